// Package engine provides the main manifest validation engine: the
// orchestrator that runs the container pre-check, the parser, and the
// content checks in order, merging their reports into one result.
package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/envelope"
	"github.com/nhermab/DICOMPolice-sub004/loader"
	"github.com/nhermab/DICOMPolice-sub004/phase"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

// Validator is the main manifest document validator. It coordinates
// validation checks for one profile; a single Validator is safe for
// concurrent use across documents.
type Validator struct {
	profile dp.Profile
	options *dp.Options
	catalog *catalog.Catalog

	pipe *pipeline.Pipeline

	metrics *dp.Metrics

	// Worker pool for batch validation
	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a new Validator for the specified profile and options.
func New(ctx context.Context, profile dp.Profile, opts ...dp.Option) (*Validator, error) {
	if !profile.IsValid() {
		return nil, fmt.Errorf("unsupported profile %q", profile)
	}

	options := dp.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	v := &Validator{
		profile: profile,
		options: options,
		metrics: dp.NewMetrics(),
	}

	if err := v.buildCatalog(); err != nil {
		return nil, err
	}
	v.buildPipeline()

	return v, nil
}

// buildCatalog assembles the rule catalog, extending the built-ins
// with site-supplied template definitions when configured.
func (v *Validator) buildCatalog() error {
	if v.options.TemplateDir == "" {
		v.catalog = catalog.Default()
		return nil
	}

	c := catalog.New()
	if err := catalog.NewLoader().LoadDir(v.options.TemplateDir, c); err != nil {
		return fmt.Errorf("load template definitions: %w", err)
	}
	v.catalog = c
	return nil
}

// buildPipeline constructs the check pipeline based on options.
func (v *Validator) buildPipeline() {
	v.pipe = pipeline.New(&pipeline.Options{
		ParallelExecution: v.options.ParallelPhases,
		MaxErrors:         v.options.MaxErrors,
		FailFast:          v.options.MaxErrors == 1,
		PhaseTimeout:      v.options.PhaseTimeout,
		CollectMetrics:    true,
	})

	if v.options.CheckContentType {
		v.pipe.Register(pipeline.PhaseIDContentType, phase.NewContentTypePhase(),
			pipeline.WithPriority(pipeline.PriorityFirst))
	}
	if v.options.CheckTemplate {
		v.pipe.Register(pipeline.PhaseIDTemplate, phase.NewTemplatePhase(),
			pipeline.WithPriority(pipeline.PriorityNormal))
	}
	if v.options.CheckEmptySequences {
		v.pipe.Register(pipeline.PhaseIDEmptySequence, phase.NewEmptySequencePhase(),
			pipeline.WithPriority(pipeline.PriorityLate))
	}
	if v.options.CheckPrivateAttrs {
		v.pipe.Register(pipeline.PhaseIDPrivateAttrs, phase.NewPrivateAttrsPhase(),
			pipeline.WithPriority(pipeline.PriorityLate))
	}
}

// Validate validates a manifest document from its raw bytes.
//
// The fixed orchestration order is: container pre-check (short-circuit
// on failure), parse, content-type sanity, template walk, auxiliary
// checks. Malformed input never produces an error return; it produces
// a result carrying a single processing error issue.
func (v *Validator) Validate(ctx context.Context, raw []byte) (*dp.Result, error) {
	start := time.Now()

	// Container pre-check: nothing after it can be trusted if the
	// envelope is broken.
	pre := envelope.Check(raw)
	if !pre.Valid {
		v.metrics.RecordValidation(time.Since(start), false)
		v.finishResult(pre)
		return pre, nil
	}

	ds, err := loader.Parse(raw)
	if err != nil {
		result := v.acquireResult()
		result.Merge(pre)
		result.AddError(dp.IssueTypeProcessing, fmt.Sprintf("cannot parse attribute tree: %v", err), "")
		v.metrics.RecordValidation(time.Since(start), false)
		v.finishResult(result)
		return result, nil
	}

	result := v.validateDataset(ctx, ds, raw, pre)
	v.metrics.RecordValidation(time.Since(start), result.Valid)
	return result, nil
}

// ValidateDataset validates an already-parsed attribute tree. The
// container pre-check is skipped; callers using this entry point have
// obtained the tree from a source they trust at the container level.
func (v *Validator) ValidateDataset(ctx context.Context, ds *dataset.Dataset) (*dp.Result, error) {
	start := time.Now()
	result := v.validateDataset(ctx, ds, nil, nil)
	v.metrics.RecordValidation(time.Since(start), result.Valid)
	return result, nil
}

// ValidateFile reads and validates a file. File access errors are
// returned as errors; everything else lands in the result.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*dp.Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return v.Validate(ctx, raw)
}

func (v *Validator) validateDataset(ctx context.Context, ds *dataset.Dataset, raw []byte, pre *dp.Result) *dp.Result {
	result := v.acquireResult()
	if pre != nil {
		result.Merge(pre)
	}

	sopClassUID := ds.String(dataset.TagSOPClassUID)
	result.SOPClassUID = sopClassUID
	result.Profile = v.profile.String()

	dv, err := Select(sopClassUID, v.profile)
	if err != nil {
		// A document type we have no validator for is a caller error,
		// reported in the result so tooling never crashes on input.
		result.AddError(dp.IssueTypeNotSupported, err.Error(), dataset.TagSOPClassUID.Keyword())
		v.finishResult(result)
		return result
	}

	pctx := pipeline.AcquireContext()
	pctx.Raw = raw
	pctx.Dataset = ds
	pctx.ContentRoot = dataset.BuildContentTree(ds)
	pctx.SOPClassUID = sopClassUID
	pctx.Profile = v.profile
	pctx.Catalog = v.catalog
	pctx.RootTemplate = dv.RootTemplate
	pctx.TemplateIDMandatory = dv.TemplateIDMandatory
	pctx.RequiredConcepts = dv.RequiredConcepts
	pctx.Result = result
	pctx.Options = &pipeline.ContextOptions{
		Verbose:   v.options.Verbose,
		MaxErrors: v.options.MaxErrors,
	}

	v.pipe.Execute(ctx, pctx)

	pctx.Result = nil // Don't release the result with the context
	pipeline.ReleaseContext(pctx)

	v.finishResult(result)
	return result
}

func (v *Validator) acquireResult() *dp.Result {
	if v.options.EnablePooling {
		return dp.AcquireResult()
	}
	return dp.NewResult()
}

// finishResult records per-severity metrics for the finished result.
func (v *Validator) finishResult(result *dp.Result) {
	for _, issue := range result.Issues {
		v.metrics.RecordIssue(issue.Severity)
	}
}

// ValidateBatch validates multiple documents in parallel. Results are
// positionally correlated with the input slice.
func (v *Validator) ValidateBatch(ctx context.Context, documents [][]byte) []*dp.Result {
	results := make([]*dp.Result, len(documents))

	v.workerPoolOnce.Do(func() {
		workers := v.options.WorkerCount
		if workers <= 0 {
			workers = 4
		}
		v.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for i, doc := range documents {
		wg.Add(1)
		go func(idx int, raw []byte) {
			defer wg.Done()

			v.workerPool <- struct{}{}
			defer func() { <-v.workerPool }()

			result, err := v.Validate(ctx, raw)
			if err != nil {
				result = v.acquireResult()
				result.AddError(dp.IssueTypeProcessing, err.Error(), "")
			}
			results[idx] = result
		}(i, doc)
	}

	wg.Wait()
	return results
}

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *dp.Metrics {
	return v.metrics
}

// Profile returns the profile this validator is configured for.
func (v *Validator) Profile() dp.Profile {
	return v.profile
}

// Options returns the validator's options.
func (v *Validator) Options() *dp.Options {
	return v.options
}

// Catalog returns the rule catalog in use.
func (v *Validator) Catalog() *catalog.Catalog {
	return v.catalog
}
