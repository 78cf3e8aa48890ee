package phase

import (
	"context"
	"strings"
	"testing"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

func templateContext(root *dataset.Item) *pipeline.Context {
	pctx := pipeline.NewContext()
	pctx.ContentRoot = root
	pctx.Catalog = catalog.Default()
	pctx.RootTemplate = catalog.Key{
		MappingResource: catalog.DefaultMappingResource,
		ID:              catalog.TemplateKeyObjectSelection,
	}
	pctx.TemplateIDMandatory = true
	pctx.Options = &pipeline.ContextOptions{Verbose: false}
	return pctx
}

func TestTemplatePhase_ReportsWalkerFindings(t *testing.T) {
	// Bare container: no template identification, no image reference
	root := &dataset.Item{ValueType: dataset.VTContainer}

	p := NewTemplatePhase()
	issues := p.Validate(context.Background(), templateContext(root))

	var missingID, missingImage bool
	for _, issue := range issues {
		if strings.Contains(issue.Diagnostics, "template identification missing") {
			missingID = true
		}
		if strings.Contains(issue.Diagnostics, "required content item missing: IMAGE content item") {
			missingImage = true
		}
		if issue.Check != "template" {
			t.Errorf("issue check = %q; want template", issue.Check)
		}
	}
	if !missingID || !missingImage {
		t.Errorf("expected template-id and required-item findings, got: %v", issues)
	}
}

func TestTemplatePhase_UnknownRootTemplate(t *testing.T) {
	root := &dataset.Item{ValueType: dataset.VTContainer}
	pctx := templateContext(root)
	pctx.RootTemplate = catalog.Key{MappingResource: "DCMR", ID: "9999"}

	p := NewTemplatePhase()
	issues := p.Validate(context.Background(), pctx)

	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d; want 1: %v", len(issues), issues)
	}
	issue := issues[0]
	if issue.Severity != dp.SeverityError || issue.Code != dp.IssueTypeNotSupported {
		t.Errorf("severity/code = %s/%s; want error/not-supported", issue.Severity, issue.Code)
	}
	if !strings.Contains(issue.Diagnostics, "DCMR:9999") {
		t.Errorf("diagnostics = %q", issue.Diagnostics)
	}
}

func TestTemplatePhase_NoContentRoot(t *testing.T) {
	pctx := pipeline.NewContext()
	pctx.Catalog = catalog.Default()

	p := NewTemplatePhase()
	if issues := p.Validate(context.Background(), pctx); issues != nil {
		t.Errorf("nil content root must produce no template findings: %v", issues)
	}
}
