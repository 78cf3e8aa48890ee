package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	dp "github.com/nhermab/DICOMPolice-sub004"
)

// Pipeline orchestrates the execution of validation checks.
// It supports both sequential and parallel execution within a priority
// group, with configurable timeouts and early termination on max
// errors. Sequential execution preserves deterministic issue ordering,
// which the engine relies on for reproducible diagnostic output.
type Pipeline struct {
	// registry holds all registered checks
	registry *PhaseRegistry

	// groups holds checks organized by execution group
	groups []*PhaseGroup

	// metrics tracks execution metrics
	metrics *dp.Metrics

	// options holds pipeline configuration
	options *Options

	// mu protects concurrent access
	mu sync.RWMutex
}

// PhaseGroup is a set of checks sharing one priority.
type PhaseGroup struct {
	Priority PhasePriority
	Phases   []*PhaseConfig
	Parallel bool
}

// Options configures pipeline behavior.
type Options struct {
	// ParallelExecution enables running independent checks of the same
	// priority in parallel. Issue order across checks then becomes
	// completion order.
	ParallelExecution bool

	// PhaseTimeout is the maximum time for a single check
	PhaseTimeout time.Duration

	// MaxErrors stops validation after this many errors (0 = unlimited)
	MaxErrors int

	// CollectMetrics enables performance metric collection
	CollectMetrics bool

	// FailFast stops at the first error
	FailFast bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		ParallelExecution: false,
		PhaseTimeout:      0, // no timeout
		MaxErrors:         0, // unlimited
		CollectMetrics:    true,
		FailFast:          false,
	}
}

// New creates a new validation pipeline.
func New(opts *Options) *Pipeline {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &Pipeline{
		registry: NewPhaseRegistry(),
		groups:   make([]*PhaseGroup, 0, 4),
		metrics:  dp.NewMetrics(),
		options:  opts,
	}
}

// Register adds a check to the pipeline.
func (p *Pipeline) Register(id PhaseID, phase Phase, opts ...PhaseOption) {
	config := &PhaseConfig{
		Phase:    phase,
		Priority: PriorityNormal,
		Parallel: true,
		Required: false,
		Enabled:  true,
	}

	for _, opt := range opts {
		opt(config)
	}

	p.mu.Lock()
	p.registry.Register(id, config)
	p.mu.Unlock()

	p.rebuildGroups()
}

// PhaseOption configures a check registration.
type PhaseOption func(*PhaseConfig)

// WithPriority sets the check priority.
func WithPriority(priority PhasePriority) PhaseOption {
	return func(c *PhaseConfig) {
		c.Priority = priority
	}
}

// WithParallel sets whether the check can run in parallel.
func WithParallel(parallel bool) PhaseOption {
	return func(c *PhaseConfig) {
		c.Parallel = parallel
	}
}

// WithRequired marks the check as required.
func WithRequired(required bool) PhaseOption {
	return func(c *PhaseConfig) {
		c.Required = required
	}
}

// Enable enables a check by ID.
func (p *Pipeline) Enable(id PhaseID) {
	p.mu.Lock()
	p.registry.Enable(id)
	p.mu.Unlock()
	p.rebuildGroups()
}

// Disable disables a check by ID.
func (p *Pipeline) Disable(id PhaseID) {
	p.mu.Lock()
	p.registry.Disable(id)
	p.mu.Unlock()
	p.rebuildGroups()
}

// rebuildGroups organizes checks into execution groups.
func (p *Pipeline) rebuildGroups() {
	p.mu.Lock()
	defer p.mu.Unlock()

	enabled := p.registry.GetEnabled()
	if len(enabled) == 0 {
		p.groups = nil
		return
	}

	// Stable sort keeps registration order within a priority
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	p.groups = p.groups[:0]
	var current *PhaseGroup
	for _, cfg := range enabled {
		if current == nil || current.Priority != cfg.Priority {
			current = &PhaseGroup{Priority: cfg.Priority}
			p.groups = append(p.groups, current)
		}
		current.Phases = append(current.Phases, cfg)
	}

	for _, group := range p.groups {
		canParallel := true
		for _, cfg := range group.Phases {
			if !cfg.Parallel {
				canParallel = false
				break
			}
		}
		group.Parallel = canParallel && p.options.ParallelExecution
	}
}

// Execute runs the validation pipeline.
func (p *Pipeline) Execute(ctx context.Context, pctx *Context) *dp.Result {
	start := time.Now()

	if pctx.Result == nil {
		pctx.Result = dp.AcquireResult()
	}

	p.mu.RLock()
	groups := p.groups
	p.mu.RUnlock()

	for _, group := range groups {
		select {
		case <-ctx.Done():
			pctx.Result.AddIssue(dp.Warning(dp.IssueTypeProcessing).
				Diagnostics("validation cancelled: " + ctx.Err().Error()).
				Build())
			return pctx.Result
		default:
		}

		if p.options.MaxErrors > 0 && pctx.Result.ErrorCount() >= p.options.MaxErrors {
			break
		}

		if p.options.FailFast && pctx.Result.ErrorCount() > 0 {
			break
		}

		p.executeGroup(ctx, pctx, group)
	}

	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordValidation(time.Since(start), pctx.Result.Valid)
	}

	return pctx.Result
}

// executeGroup executes a single phase group.
func (p *Pipeline) executeGroup(ctx context.Context, pctx *Context, group *PhaseGroup) {
	if group.Parallel && len(group.Phases) > 1 {
		p.executeParallel(ctx, pctx, group)
	} else {
		p.executeSequential(ctx, pctx, group)
	}
}

// executeSequential runs checks one at a time.
func (p *Pipeline) executeSequential(ctx context.Context, pctx *Context, group *PhaseGroup) {
	for _, cfg := range group.Phases {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if p.options.MaxErrors > 0 && pctx.Result.ErrorCount() >= p.options.MaxErrors {
			return
		}

		p.executePhase(ctx, pctx, cfg)

		if p.options.FailFast && pctx.Result.ErrorCount() > 0 {
			return
		}
	}
}

// executeParallel runs checks concurrently.
func (p *Pipeline) executeParallel(ctx context.Context, pctx *Context, group *PhaseGroup) {
	var wg sync.WaitGroup
	resultsChan := make(chan []dp.Issue, len(group.Phases))

	phaseCtx := ctx
	var cancel context.CancelFunc
	if p.options.PhaseTimeout > 0 {
		phaseCtx, cancel = context.WithTimeout(ctx, p.options.PhaseTimeout)
		defer cancel()
	}

	for _, cfg := range group.Phases {
		wg.Add(1)
		go func(cfg *PhaseConfig) {
			defer wg.Done()

			start := time.Now()
			issues := cfg.Phase.Validate(phaseCtx, pctx)
			duration := time.Since(start)

			if p.options.CollectMetrics && p.metrics != nil {
				p.metrics.RecordCheck(cfg.Phase.Name(), duration, len(issues))
			}

			resultsChan <- issues
		}(cfg)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for issues := range resultsChan {
		pctx.Result.AddIssues(issues)
	}
}

// executePhase runs a single check with timing.
func (p *Pipeline) executePhase(ctx context.Context, pctx *Context, cfg *PhaseConfig) {
	phaseCtx := ctx
	var cancel context.CancelFunc
	if p.options.PhaseTimeout > 0 {
		phaseCtx, cancel = context.WithTimeout(ctx, p.options.PhaseTimeout)
		defer cancel()
	}

	start := time.Now()
	issues := cfg.Phase.Validate(phaseCtx, pctx)
	duration := time.Since(start)

	if p.options.CollectMetrics && p.metrics != nil {
		p.metrics.RecordCheck(cfg.Phase.Name(), duration, len(issues))
	}

	pctx.Result.AddIssues(issues)
}

// Metrics returns the pipeline metrics.
func (p *Pipeline) Metrics() *dp.Metrics {
	return p.metrics
}

// SetMetrics sets the metrics collector.
func (p *Pipeline) SetMetrics(m *dp.Metrics) {
	p.metrics = m
}

// Registry returns the check registry.
func (p *Pipeline) Registry() *PhaseRegistry {
	return p.registry
}

// PhaseCount returns the number of enabled checks.
func (p *Pipeline) PhaseCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.registry.GetEnabled())
}

// GroupCount returns the number of phase groups.
func (p *Pipeline) GroupCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.groups)
}
