// Package pipeline provides the validation pipeline infrastructure:
// checks, their registry, and the executor that runs them in order.
package pipeline

import (
	"sync"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// Context holds all state needed during validation of a single
// document. It is passed through all checks and provides shared access
// to the attribute tree, the active profile, and the accumulated
// result.
//
// Context instances are pooled for efficiency. Use AcquireContext() and
// Release() to manage them properly.
type Context struct {
	// Raw is the original byte stream, when the run started from bytes.
	Raw []byte

	// Dataset is the parsed attribute tree; read-only to all checks.
	Dataset *dataset.Dataset

	// ContentRoot is the structured-report content tree extracted from
	// Dataset.
	ContentRoot *dataset.Item

	// SOPClassUID is the document's declared content-type identifier.
	SOPClassUID string

	// Profile is the active IHE profile, always explicit, never ambient.
	Profile dp.Profile

	// Catalog is the rule catalog for this run.
	Catalog *catalog.Catalog

	// RootTemplate is the template the active profile expects at the
	// content root.
	RootTemplate catalog.Key

	// TemplateIDMandatory controls the severity of a missing template
	// identification at the content root.
	TemplateIDMandatory bool

	// RequiredConcepts lists concept codes the active profile upgrades
	// to mandatory even where the template says required-if-applicable.
	RequiredConcepts []dataset.ConceptCode

	// Result accumulates validation issues.
	Result *dp.Result

	// Options holds validation options accessible during validation.
	Options *ContextOptions

	// mu protects metadata during parallel check execution.
	mu sync.RWMutex

	metadata map[string]any
}

// ContextOptions holds the per-run option subset checks consult.
type ContextOptions struct {
	Verbose   bool
	MaxErrors int
}

// contextPool holds reusable Context instances.
var contextPool = sync.Pool{
	New: func() any {
		return &Context{
			metadata: make(map[string]any, 8),
		}
	},
}

// AcquireContext gets a Context from the pool.
// Call Release() when done to return it to the pool.
func AcquireContext() *Context {
	ctx := contextPool.Get().(*Context)
	ctx.Reset()
	return ctx
}

// Release returns the Context to the pool.
// After calling Release, the Context should not be used.
func (c *Context) Release() {
	if c == nil {
		return
	}
	contextPool.Put(c)
}

// ReleaseContext returns a Context to the pool; equivalent to
// ctx.Release().
func ReleaseContext(ctx *Context) {
	if ctx != nil {
		ctx.Release()
	}
}

// Reset clears the context for reuse.
func (c *Context) Reset() {
	c.Raw = nil
	c.Dataset = nil
	c.ContentRoot = nil
	c.SOPClassUID = ""
	c.Profile = dp.ProfileNone
	c.Catalog = nil
	c.RootTemplate = catalog.Key{}
	c.TemplateIDMandatory = false
	c.RequiredConcepts = nil
	c.Result = nil
	c.Options = nil

	for k := range c.metadata {
		delete(c.metadata, k)
	}
}

// SetMetadata stores a value in the context metadata.
// Thread-safe for use during parallel check execution.
func (c *Context) SetMetadata(key string, value any) {
	c.mu.Lock()
	c.metadata[key] = value
	c.mu.Unlock()
}

// GetMetadata retrieves a value from the context metadata.
// Thread-safe for use during parallel check execution.
func (c *Context) GetMetadata(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.metadata[key]
	c.mu.RUnlock()
	return v, ok
}

// AddIssue adds a validation issue to the result.
func (c *Context) AddIssue(issue dp.Issue) {
	if c.Result != nil {
		c.Result.AddIssue(issue)
	}
}

// ShouldStop returns true if validation should stop (max errors
// reached).
func (c *Context) ShouldStop() bool {
	if c.Options == nil || c.Options.MaxErrors <= 0 {
		return false
	}
	if c.Result == nil {
		return false
	}
	return c.Result.ErrorCount() >= c.Options.MaxErrors
}

// NewContext creates a new Context (non-pooled).
// Prefer AcquireContext() for better performance.
func NewContext() *Context {
	return &Context{
		metadata: make(map[string]any, 8),
	}
}
