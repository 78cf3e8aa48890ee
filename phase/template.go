package phase

import (
	"context"
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
	"github.com/nhermab/DICOMPolice-sub004/walker"
)

// TemplatePhase runs the template walker from the content root using
// the root template the active profile expects.
type TemplatePhase struct{}

// NewTemplatePhase creates the template conformance check.
func NewTemplatePhase() *TemplatePhase {
	return &TemplatePhase{}
}

// Name returns the check name.
func (p *TemplatePhase) Name() string {
	return string(pipeline.PhaseIDTemplate)
}

// Validate walks the content tree against the expected root template.
func (p *TemplatePhase) Validate(ctx context.Context, pctx *pipeline.Context) []dp.Issue {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	if pctx.ContentRoot == nil || pctx.Catalog == nil {
		return nil
	}

	tmpl, ok := pctx.Catalog.TemplateFor(pctx.RootTemplate.MappingResource, pctx.RootTemplate.ID)
	if !ok {
		// Unknown root templates are a caller error, not an engine fault
		return []dp.Issue{ErrorIssue(dp.IssueTypeNotSupported,
			fmt.Sprintf("no template definition for %s; cannot validate content tree", pctx.RootTemplate),
			"", p.Name())}
	}

	opts := walker.Options{
		TemplateIDMandatory: pctx.TemplateIDMandatory,
		RequiredConcepts:    pctx.RequiredConcepts,
		Verbose:             pctx.Options == nil || pctx.Options.Verbose,
	}
	return walker.Walk(pctx.Catalog, tmpl, pctx.ContentRoot, opts)
}
