package dicompolice

// Severity represents the severity of a validation issue.
// A document is invalid if and only if it has at least one
// error-severity issue; warnings and informational issues
// never invalidate a document.
type Severity string

const (
	// SeverityError indicates a violation of a mandatory rule.
	SeverityError Severity = "error"
	// SeverityWarning indicates a suspicious but not disqualifying finding.
	SeverityWarning Severity = "warning"
	// SeverityInformation indicates a check passed; used for verbose output.
	SeverityInformation Severity = "information"
)

// IssueType classifies what kind of rule produced an issue.
type IssueType string

const (
	// IssueTypeStructure indicates a structural problem (envelope, tree shape).
	IssueTypeStructure IssueType = "structure"
	// IssueTypeRequired indicates a required content item is missing.
	IssueTypeRequired IssueType = "required"
	// IssueTypeValue indicates a wrong value or value type.
	IssueTypeValue IssueType = "value"
	// IssueTypeCodeInvalid indicates an invalid or miscategorized identifier.
	IssueTypeCodeInvalid IssueType = "code-invalid"
	// IssueTypeTemplate indicates a template identification problem.
	IssueTypeTemplate IssueType = "template"
	// IssueTypeProcessing indicates the run itself failed (unparseable input).
	IssueTypeProcessing IssueType = "processing"
	// IssueTypeInformational indicates informational content.
	IssueTypeInformational IssueType = "informational"
	// IssueTypeNotSupported indicates no validator exists for the document type.
	IssueTypeNotSupported IssueType = "not-supported"
)

// Issue represents a single validation finding.
// Issues are immutable once created.
type Issue struct {
	// Severity of the issue (error, warning, information)
	Severity Severity `json:"severity"`

	// Code identifying the type of issue
	Code IssueType `json:"code"`

	// Diagnostics contains human-readable details about the issue
	Diagnostics string `json:"diagnostics,omitempty"`

	// Expression contains structural path(s) to the attribute(s) in error,
	// e.g. "ContentSequence[2].ConceptNameCodeSequence"
	Expression []string `json:"expression,omitempty"`

	// Check is the name of the check that generated this issue
	Check string `json:"check,omitempty"`
}

// IsError returns true if this issue invalidates the document.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// IsWarning returns true if this is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// IsInfo returns true if this is informational.
func (i Issue) IsInfo() bool {
	return i.Severity == SeverityInformation
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	path := ""
	if len(i.Expression) > 0 && i.Expression[0] != "" {
		path = " at " + i.Expression[0]
	}
	return string(i.Severity) + ": " + i.Diagnostics + path
}

// IssueBuilder provides a fluent API for building issues.
type IssueBuilder struct {
	issue Issue
}

// NewIssue creates a new IssueBuilder.
func NewIssue(severity Severity, code IssueType) *IssueBuilder {
	return &IssueBuilder{
		issue: Issue{
			Severity: severity,
			Code:     code,
		},
	}
}

// Error creates an error issue.
func Error(code IssueType) *IssueBuilder {
	return NewIssue(SeverityError, code)
}

// Warning creates a warning issue.
func Warning(code IssueType) *IssueBuilder {
	return NewIssue(SeverityWarning, code)
}

// Info creates an informational issue.
func Info(code IssueType) *IssueBuilder {
	return NewIssue(SeverityInformation, code)
}

// Diagnostics sets the diagnostic message.
func (b *IssueBuilder) Diagnostics(msg string) *IssueBuilder {
	b.issue.Diagnostics = msg
	return b
}

// At sets the structural path.
func (b *IssueBuilder) At(path string) *IssueBuilder {
	b.issue.Expression = []string{path}
	return b
}

// AtPaths sets multiple structural paths.
func (b *IssueBuilder) AtPaths(paths ...string) *IssueBuilder {
	b.issue.Expression = paths
	return b
}

// Check sets the source check name.
func (b *IssueBuilder) Check(name string) *IssueBuilder {
	b.issue.Check = name
	return b
}

// Build returns the constructed issue.
func (b *IssueBuilder) Build() Issue {
	return b.issue
}
