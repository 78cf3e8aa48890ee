package phase

import (
	"context"
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

// EmptySequencePhase flags every sequence attribute that is present but
// has zero items. The scan covers the whole dataset, including
// sequences outside any template's scope, so the walker does not need
// its own copy of this rule.
type EmptySequencePhase struct{}

// NewEmptySequencePhase creates the empty-sequence check.
func NewEmptySequencePhase() *EmptySequencePhase {
	return &EmptySequencePhase{}
}

// Name returns the check name.
func (p *EmptySequencePhase) Name() string {
	return string(pipeline.PhaseIDEmptySequence)
}

// Validate scans for present-but-empty sequences.
func (p *EmptySequencePhase) Validate(ctx context.Context, pctx *pipeline.Context) []dp.Issue {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	var issues []dp.Issue
	walkDatasets(pctx.Dataset, "", func(ds *dataset.Dataset, path string) {
		for _, e := range ds.Elements {
			if !e.IsSequence() || len(e.Items) > 0 {
				continue
			}
			issues = append(issues, ErrorIssue(dp.IssueTypeStructure,
				fmt.Sprintf("sequence %s is present but has zero length; must contain at least one item when present", e.Tag.Keyword()),
				dataset.JoinPath(path, e.Tag.Keyword()), p.Name()))
		}
	})
	return issues
}
