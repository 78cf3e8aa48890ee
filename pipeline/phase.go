package pipeline

import (
	"context"

	dp "github.com/nhermab/DICOMPolice-sub004"
)

// Phase represents a single validation check in the pipeline.
//
// Phases should be:
// - Stateless: All state should be in the Context
// - Thread-safe: Multiple goroutines may call Validate concurrently
// - Fast-failing: Return early if ctx is cancelled or max errors reached
type Phase interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Validate performs the check and returns any issues found.
	// The context.Context is used for cancellation and timeouts.
	// The pipeline Context holds the document and accumulates issues.
	Validate(ctx context.Context, pctx *Context) []dp.Issue
}

// PhaseFunc is a function type that implements Phase.
// Useful for simple checks that don't need a full struct.
type PhaseFunc struct {
	name string
	fn   func(ctx context.Context, pctx *Context) []dp.Issue
}

// NewPhaseFunc creates a Phase from a function.
func NewPhaseFunc(name string, fn func(ctx context.Context, pctx *Context) []dp.Issue) Phase {
	return &PhaseFunc{name: name, fn: fn}
}

// Name returns the phase name.
func (p *PhaseFunc) Name() string {
	return p.name
}

// Validate calls the wrapped function.
func (p *PhaseFunc) Validate(ctx context.Context, pctx *Context) []dp.Issue {
	return p.fn(ctx, pctx)
}

// PhaseID uniquely identifies a validation check.
type PhaseID string

// Standard check identifiers.
const (
	PhaseIDContentType   PhaseID = "content-type"
	PhaseIDTemplate      PhaseID = "template"
	PhaseIDEmptySequence PhaseID = "empty-sequence"
	PhaseIDPrivateAttrs  PhaseID = "private-attributes"
)

// PhasePriority defines the order in which checks should run.
// Lower values run first.
type PhasePriority int

const (
	// PriorityFirst for checks that must run first
	PriorityFirst PhasePriority = 100

	// PriorityEarly for checks that should run early
	PriorityEarly PhasePriority = 200

	// PriorityNormal for standard checks
	PriorityNormal PhasePriority = 500

	// PriorityLate for checks that depend on earlier ones
	PriorityLate PhasePriority = 800
)

// PhaseConfig holds configuration for a check in the pipeline.
type PhaseConfig struct {
	// Phase is the check implementation
	Phase Phase

	// Priority determines execution order (lower runs first)
	Priority PhasePriority

	// Parallel indicates if this check can run in parallel with others
	// of the same priority
	Parallel bool

	// Required indicates if this check must run (cannot be disabled)
	Required bool

	// Enabled indicates if this check is currently enabled
	Enabled bool
}

// PhaseRegistry manages available validation checks.
type PhaseRegistry struct {
	phases map[PhaseID]*PhaseConfig
	order  []PhaseID
}

// NewPhaseRegistry creates a new empty registry.
func NewPhaseRegistry() *PhaseRegistry {
	return &PhaseRegistry{
		phases: make(map[PhaseID]*PhaseConfig),
	}
}

// Register adds a check to the registry. Registration order is
// preserved as a tie-break within a priority group, so issue ordering
// stays reproducible.
func (r *PhaseRegistry) Register(id PhaseID, config *PhaseConfig) {
	if _, exists := r.phases[id]; !exists {
		r.order = append(r.order, id)
	}
	r.phases[id] = config
}

// Get returns a check configuration by ID.
func (r *PhaseRegistry) Get(id PhaseID) (*PhaseConfig, bool) {
	cfg, ok := r.phases[id]
	return cfg, ok
}

// GetEnabled returns all enabled checks in registration order.
func (r *PhaseRegistry) GetEnabled() []*PhaseConfig {
	var enabled []*PhaseConfig
	for _, id := range r.order {
		if cfg := r.phases[id]; cfg != nil && cfg.Enabled {
			enabled = append(enabled, cfg)
		}
	}
	return enabled
}

// Enable enables a check by ID.
func (r *PhaseRegistry) Enable(id PhaseID) {
	if cfg, ok := r.phases[id]; ok {
		cfg.Enabled = true
	}
}

// Disable disables a check by ID (unless required).
func (r *PhaseRegistry) Disable(id PhaseID) {
	if cfg, ok := r.phases[id]; ok && !cfg.Required {
		cfg.Enabled = false
	}
}

// All returns all registered checks.
func (r *PhaseRegistry) All() map[PhaseID]*PhaseConfig {
	return r.phases
}

// ConditionalPhase wraps a check with a condition for execution.
type ConditionalPhase struct {
	phase     Phase
	condition func(*Context) bool
}

// NewConditionalPhase creates a check that only runs when a condition
// is met.
func NewConditionalPhase(phase Phase, condition func(*Context) bool) Phase {
	return &ConditionalPhase{
		phase:     phase,
		condition: condition,
	}
}

// Name returns the wrapped phase name.
func (p *ConditionalPhase) Name() string {
	return p.phase.Name()
}

// Validate runs the check if the condition is met.
func (p *ConditionalPhase) Validate(ctx context.Context, pctx *Context) []dp.Issue {
	if p.condition != nil && !p.condition(pctx) {
		return nil
	}
	return p.phase.Validate(ctx, pctx)
}

// CompositePhase combines multiple checks into one.
type CompositePhase struct {
	name   string
	phases []Phase
}

// NewCompositePhase creates a check that runs multiple sub-checks
// sequentially.
func NewCompositePhase(name string, phases ...Phase) Phase {
	return &CompositePhase{
		name:   name,
		phases: phases,
	}
}

// Name returns the composite phase name.
func (p *CompositePhase) Name() string {
	return p.name
}

// Validate runs all sub-checks sequentially.
func (p *CompositePhase) Validate(ctx context.Context, pctx *Context) []dp.Issue {
	var allIssues []dp.Issue

	for _, phase := range p.phases {
		select {
		case <-ctx.Done():
			return allIssues
		default:
		}

		if pctx.ShouldStop() {
			return allIssues
		}

		issues := phase.Validate(ctx, pctx)
		allIssues = append(allIssues, issues...)
	}

	return allIssues
}
