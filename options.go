package dicompolice

import (
	"runtime"
	"time"
)

// Option configures the validation engine.
type Option func(*Options)

// Options holds all configuration for a validation engine.
type Options struct {
	// Check toggles
	CheckContentType    bool
	CheckTemplate       bool
	CheckEmptySequences bool
	CheckPrivateAttrs   bool

	// Verbose includes passing-check INFO issues in the result.
	Verbose bool

	// Performance
	MaxErrors      int
	ParallelPhases bool
	WorkerCount    int
	PhaseTimeout   time.Duration
	EnablePooling  bool

	// TemplateDir is an optional directory of site-supplied template
	// definition files that extend the built-in catalog.
	TemplateDir string
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		CheckContentType:    true,
		CheckTemplate:       true,
		CheckEmptySequences: true,
		CheckPrivateAttrs:   true,

		Verbose: true,

		MaxErrors: 0, // unlimited
		// Sequential by default: a single manifest is a small tree and
		// sequential phases keep issue ordering reproducible.
		ParallelPhases: false,
		WorkerCount:    runtime.NumCPU(),
		PhaseTimeout:   0, // no timeout
		EnablePooling:  true,
	}
}

// WithContentTypeCheck enables or disables the content-type sanity check.
func WithContentTypeCheck(enable bool) Option {
	return func(o *Options) {
		o.CheckContentType = enable
	}
}

// WithTemplateCheck enables or disables template validation.
func WithTemplateCheck(enable bool) Option {
	return func(o *Options) {
		o.CheckTemplate = enable
	}
}

// WithEmptySequenceCheck enables or disables the empty-sequence scan.
func WithEmptySequenceCheck(enable bool) Option {
	return func(o *Options) {
		o.CheckEmptySequences = enable
	}
}

// WithPrivateAttributeCheck enables or disables the private-attribute scan.
func WithPrivateAttributeCheck(enable bool) Option {
	return func(o *Options) {
		o.CheckPrivateAttrs = enable
	}
}

// WithVerbose controls whether passing checks report INFO issues.
func WithVerbose(enable bool) Option {
	return func(o *Options) {
		o.Verbose = enable
	}
}

// WithMaxErrors stops validation after this many errors (0 = unlimited).
func WithMaxErrors(n int) Option {
	return func(o *Options) {
		o.MaxErrors = n
	}
}

// WithParallelPhases enables running independent checks concurrently.
// Issue ordering across checks is no longer deterministic when enabled.
func WithParallelPhases(enable bool) Option {
	return func(o *Options) {
		o.ParallelPhases = enable
	}
}

// WithWorkerCount sets the number of workers for batch validation.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithPhaseTimeout sets the maximum time for a single check.
func WithPhaseTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.PhaseTimeout = d
	}
}

// WithPooling enables or disables result/context pooling.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

// WithTemplateDir sets a directory of template definition files to load
// in addition to the built-in catalog.
func WithTemplateDir(dir string) Option {
	return func(o *Options) {
		o.TemplateDir = dir
	}
}
