package dicompolice

import (
	"sync"
)

// Result contains the outcome of validating one manifest document.
// Use Release() to return it to the pool when done for better performance.
type Result struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool `json:"valid"`

	// Issues contains all validation issues found, in the order
	// the checks reported them
	Issues []Issue `json:"issues,omitempty"`

	// JobID is set when using batch validation to correlate results
	JobID string `json:"jobId,omitempty"`

	// SOPClassUID is the content-type identifier of the validated document
	SOPClassUID string `json:"sopClassUid,omitempty"`

	// Profile is the IHE profile the document was validated against
	Profile string `json:"profile,omitempty"`

	// mu protects concurrent access to Issues
	mu sync.Mutex
}

// resultPool holds reusable Result instances.
var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Issues: make([]Issue, 0, 32),
		}
	},
}

// AcquireResult gets a Result from the pool.
// The result starts as valid with no issues.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool.
// After calling Release, the Result should not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Don't return results with oversized issue slices
	if cap(r.Issues) <= 1024 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.Issues = r.Issues[:0]
	r.JobID = ""
	r.SOPClassUID = ""
	r.Profile = ""
}

// AddIssue adds a validation issue to the result.
// This method is thread-safe.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issue)
	if issue.IsError() {
		r.Valid = false
	}
}

// AddIssues adds multiple issues to the result, preserving their order.
// This method is thread-safe.
func (r *Result) AddIssues(issues []Issue) {
	if len(issues) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issues...)
	for _, issue := range issues {
		if issue.IsError() {
			r.Valid = false
			break
		}
	}
}

// AddError is a convenience method to add an error issue.
func (r *Result) AddError(code IssueType, diagnostics, path string) {
	r.AddIssue(Issue{
		Severity:    SeverityError,
		Code:        code,
		Diagnostics: diagnostics,
		Expression:  []string{path},
	})
}

// AddWarning is a convenience method to add a warning issue.
func (r *Result) AddWarning(code IssueType, diagnostics, path string) {
	r.AddIssue(Issue{
		Severity:    SeverityWarning,
		Code:        code,
		Diagnostics: diagnostics,
		Expression:  []string{path},
	})
}

// AddInfo is a convenience method to add an informational issue.
func (r *Result) AddInfo(code IssueType, diagnostics, path string) {
	r.AddIssue(Issue{
		Severity:    SeverityInformation,
		Code:        code,
		Diagnostics: diagnostics,
		Expression:  []string{path},
	})
}

// HasErrors returns true if there are any error issues.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, issue := range r.Issues {
		if issue.IsError() {
			return true
		}
	}
	return false
}

// HasWarnings returns true if there are any warning issues.
func (r *Result) HasWarnings() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, issue := range r.Issues {
		if issue.IsWarning() {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error issues.
func (r *Result) ErrorCount() int {
	return len(r.IssuesOf(SeverityError))
}

// WarningCount returns the number of warning issues.
func (r *Result) WarningCount() int {
	return len(r.IssuesOf(SeverityWarning))
}

// InfoCount returns the number of informational issues.
func (r *Result) InfoCount() int {
	return len(r.IssuesOf(SeverityInformation))
}

// IssuesOf returns all issues with the given severity, in report order.
func (r *Result) IssuesOf(severity Severity) []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			matched = append(matched, issue)
		}
	}
	return matched
}

// Errors returns all error issues.
func (r *Result) Errors() []Issue {
	return r.IssuesOf(SeverityError)
}

// Warnings returns all warning issues.
func (r *Result) Warnings() []Issue {
	return r.IssuesOf(SeverityWarning)
}

// Infos returns all informational issues.
func (r *Result) Infos() []Issue {
	return r.IssuesOf(SeverityInformation)
}

// Merge combines another result into this one. Issues are concatenated
// preserving order, and validity is recomputed, so merge is associative.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}

	other.mu.Lock()
	issues := make([]Issue, len(other.Issues))
	copy(issues, other.Issues)
	other.mu.Unlock()

	r.AddIssues(issues)
}

// Clone creates a copy of the result (not pooled).
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := &Result{
		Valid:       r.Valid,
		Issues:      make([]Issue, len(r.Issues)),
		JobID:       r.JobID,
		SOPClassUID: r.SOPClassUID,
		Profile:     r.Profile,
	}
	copy(clone.Issues, r.Issues)
	return clone
}

// NewResult creates a new (non-pooled) result.
// Prefer AcquireResult() for better performance.
func NewResult() *Result {
	return &Result{
		Valid:  true,
		Issues: make([]Issue, 0, 8),
	}
}
