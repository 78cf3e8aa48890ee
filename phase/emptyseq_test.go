package phase

import (
	"context"
	"strings"
	"testing"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

func datasetContext(ds *dataset.Dataset) *pipeline.Context {
	pctx := pipeline.NewContext()
	pctx.Dataset = ds
	pctx.Options = &pipeline.ContextOptions{Verbose: true}
	return pctx
}

func TestEmptySequence_Clean(t *testing.T) {
	item := &dataset.Dataset{}
	item.Add(&dataset.Element{Tag: dataset.TagCodeValue, VR: "SH", Value: []string{"113030"}})

	ds := &dataset.Dataset{}
	ds.Add(&dataset.Element{Tag: dataset.TagConceptNameCodeSeq, VR: "SQ", Items: []*dataset.Dataset{item}})

	p := NewEmptySequencePhase()
	if issues := p.Validate(context.Background(), datasetContext(ds)); len(issues) != 0 {
		t.Errorf("populated sequences reported: %v", issues)
	}
}

func TestEmptySequence_TopLevel(t *testing.T) {
	ds := &dataset.Dataset{}
	ds.Add(&dataset.Element{Tag: dataset.TagContentSeq, VR: "SQ", Items: []*dataset.Dataset{}})

	p := NewEmptySequencePhase()
	issues := p.Validate(context.Background(), datasetContext(ds))

	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d; want exactly 1: %v", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != dp.SeverityError || issue.Code != dp.IssueTypeStructure {
		t.Errorf("severity/code = %s/%s; want error/structure", issue.Severity, issue.Code)
	}
	if !strings.Contains(issue.Diagnostics, "zero length") {
		t.Errorf("diagnostics = %q", issue.Diagnostics)
	}
	if issue.Expression[0] != "ContentSequence" {
		t.Errorf("path = %v; want ContentSequence", issue.Expression)
	}
}

func TestEmptySequence_Nested(t *testing.T) {
	inner := &dataset.Dataset{}
	inner.Add(&dataset.Element{Tag: dataset.TagReferencedSOPSequence, VR: "SQ", Items: []*dataset.Dataset{}})

	ds := &dataset.Dataset{}
	ds.Add(&dataset.Element{Tag: dataset.TagContentSeq, VR: "SQ", Items: []*dataset.Dataset{inner}})

	p := NewEmptySequencePhase()
	issues := p.Validate(context.Background(), datasetContext(ds))

	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d; want exactly 1: %v", len(issues), issues)
	}
	if got := issues[0].Expression[0]; got != "ContentSequence[0].ReferencedSOPSequence" {
		t.Errorf("path = %q; want ContentSequence[0].ReferencedSOPSequence", got)
	}
}

func TestEmptySequence_OneIssuePerSequence(t *testing.T) {
	ds := &dataset.Dataset{}
	ds.Add(&dataset.Element{Tag: dataset.TagContentSeq, VR: "SQ", Items: []*dataset.Dataset{}})
	ds.Add(&dataset.Element{Tag: dataset.TagEvidenceSeq, VR: "SQ", Items: []*dataset.Dataset{}})

	p := NewEmptySequencePhase()
	issues := p.Validate(context.Background(), datasetContext(ds))

	if len(issues) != 2 {
		t.Fatalf("len(issues) = %d; want 2: %v", len(issues), issues)
	}
	for _, issue := range issues {
		if issue.Severity != dp.SeverityError {
			t.Errorf("severity = %s; want error", issue.Severity)
		}
	}
}

func TestEmptySequence_AbsentIsNotEmpty(t *testing.T) {
	// A dataset without the sequence at all must not be flagged; the
	// rule covers present-but-empty only.
	ds := &dataset.Dataset{}
	ds.Add(&dataset.Element{Tag: dataset.TagSOPClassUID, VR: "UI", Value: []string{"1.2.3"}})

	p := NewEmptySequencePhase()
	if issues := p.Validate(context.Background(), datasetContext(ds)); len(issues) != 0 {
		t.Errorf("absent sequence reported: %v", issues)
	}
}
