// Package phase implements the individual validation checks: content
// type sanity, template conformance, empty-sequence detection, and
// private-attribute hygiene.
//
// Each check is independent; failure of one never prevents the others
// from running.
package phase

import (
	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// ErrorIssue builds an error issue tagged with the originating check.
func ErrorIssue(code dp.IssueType, diagnostics, path, check string) dp.Issue {
	return dp.Error(code).Diagnostics(diagnostics).At(path).Check(check).Build()
}

// WarningIssue builds a warning issue tagged with the originating check.
func WarningIssue(code dp.IssueType, diagnostics, path, check string) dp.Issue {
	return dp.Warning(code).Diagnostics(diagnostics).At(path).Check(check).Build()
}

// InfoIssue builds an informational issue tagged with the originating
// check.
func InfoIssue(code dp.IssueType, diagnostics, path, check string) dp.Issue {
	return dp.Info(code).Diagnostics(diagnostics).At(path).Check(check).Build()
}

// walkDatasets calls fn for every dataset in the tree (the top-level
// dataset and every sequence item, depth-first), with the structural
// path of each dataset's position.
func walkDatasets(ds *dataset.Dataset, path string, fn func(ds *dataset.Dataset, path string)) {
	if ds == nil {
		return
	}
	fn(ds, path)
	for _, e := range ds.Elements {
		if !e.IsSequence() {
			continue
		}
		for i, item := range e.Items {
			itemPath := dataset.SequencePath(path, e.Tag, i)
			walkDatasets(item, itemPath, fn)
		}
	}
}
