package walker

import (
	"strings"
	"testing"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

var (
	codeManifest     = dataset.ConceptCode{Value: "113030", Scheme: "DCM", Meaning: "Manifest"}
	codeLanguage     = dataset.ConceptCode{Value: "121049", Scheme: "DCM", Meaning: "Language of Content Item and Descendants"}
	codeObserver     = dataset.ConceptCode{Value: "121008", Scheme: "DCM", Meaning: "Person Observer Name"}
	codeImageLibrary = dataset.ConceptCode{Value: "111028", Scheme: "DCM", Meaning: "Image Library"}
	codeLibraryGroup = dataset.ConceptCode{Value: "126200", Scheme: "DCM", Meaning: "Image Library Group"}
)

func item(rel dataset.RelationshipType, vt dataset.ValueType, code *dataset.ConceptCode, children ...*dataset.Item) *dataset.Item {
	return &dataset.Item{
		Relationship: rel,
		ValueType:    vt,
		ConceptName:  code,
		Children:     children,
	}
}

// manifestRoot builds a content tree satisfying every rule of the
// built-in Key Object Selection template, including a populated
// Image Library.
func manifestRoot() *dataset.Item {
	group := item(dataset.RelContains, dataset.VTContainer, &codeLibraryGroup,
		item(dataset.RelContains, dataset.VTImage, nil),
	)
	library := item(dataset.RelContains, dataset.VTContainer, &codeImageLibrary, group)

	root := item("", dataset.VTContainer, &codeManifest,
		item(dataset.RelHasConceptMod, dataset.VTCode, &codeLanguage),
		item(dataset.RelHasObsContext, dataset.VTPName, &codeObserver),
		item(dataset.RelContains, dataset.VTImage, nil),
		library,
	)
	root.TemplateID = "2010"
	root.MappingResource = "DCMR"
	return root
}

func kosTemplate(t *testing.T) *catalog.Template {
	t.Helper()
	tmpl, ok := catalog.Default().TemplateFor(catalog.DefaultMappingResource, catalog.TemplateKeyObjectSelection)
	if !ok {
		t.Fatal("built-in KOS template not found")
	}
	return tmpl
}

func severityCounts(issues []dp.Issue) (errs, warns, infos int) {
	for _, issue := range issues {
		switch issue.Severity {
		case dp.SeverityError:
			errs++
		case dp.SeverityWarning:
			warns++
		case dp.SeverityInformation:
			infos++
		}
	}
	return
}

func TestWalk_ValidManifest(t *testing.T) {
	issues := Walk(catalog.Default(), kosTemplate(t), manifestRoot(), Options{TemplateIDMandatory: true})

	errs, warns, _ := severityCounts(issues)
	if errs != 0 || warns != 0 {
		t.Errorf("valid manifest produced %d error(s), %d warning(s): %v", errs, warns, issues)
	}
}

func TestWalk_ValidManifestVerbose(t *testing.T) {
	issues := Walk(catalog.Default(), kosTemplate(t), manifestRoot(), Options{TemplateIDMandatory: true, Verbose: true})

	errs, warns, infos := severityCounts(issues)
	if errs != 0 || warns != 0 {
		t.Fatalf("valid manifest produced %d error(s), %d warning(s): %v", errs, warns, issues)
	}
	if infos == 0 {
		t.Error("verbose walk must report satisfied rules")
	}

	// The first note covers the template identification
	if !strings.Contains(issues[0].Diagnostics, "correctly identifies template 2010") {
		t.Errorf("first issue = %q", issues[0].Diagnostics)
	}
}

func TestWalk_MissingTemplateID(t *testing.T) {
	root := manifestRoot()
	root.TemplateID = ""
	root.MappingResource = ""

	t.Run("mandatory", func(t *testing.T) {
		issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
		errs, _, _ := severityCounts(issues)
		if errs != 1 {
			t.Fatalf("errors = %d; want 1: %v", errs, issues)
		}
		issue := issues[0]
		if issue.Code != dp.IssueTypeTemplate {
			t.Errorf("code = %s; want template", issue.Code)
		}
		if !strings.Contains(issue.Diagnostics, "explicitly identify template 2010 of DCMR") {
			t.Errorf("diagnostics = %q", issue.Diagnostics)
		}
		if issue.Expression[0] != "ContentTemplateSequence" {
			t.Errorf("path = %v", issue.Expression)
		}
	})

	t.Run("advisory", func(t *testing.T) {
		issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: false})
		errs, warns, _ := severityCounts(issues)
		if errs != 0 || warns != 1 {
			t.Fatalf("errors/warnings = %d/%d; want 0/1: %v", errs, warns, issues)
		}
	})
}

func TestWalk_WrongTemplateID(t *testing.T) {
	root := manifestRoot()
	root.TemplateID = "1500"

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs, warns, _ := severityCounts(issues)
	if errs != 0 || warns != 1 {
		t.Fatalf("errors/warnings = %d/%d; want 0/1: %v", errs, warns, issues)
	}
	if !strings.Contains(issues[0].Diagnostics, `does not identify the expected template "2010"`) {
		t.Errorf("diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestWalk_MappingResourceMismatch(t *testing.T) {
	root := manifestRoot()
	root.MappingResource = "OTHER"

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs, _, _ := severityCounts(issues)
	if errs != 1 {
		t.Fatalf("errors = %d; want 1: %v", errs, issues)
	}
	if !strings.Contains(issues[0].Diagnostics, `mapping resource mismatch; expected "DCMR", found "OTHER"`) {
		t.Errorf("diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestWalk_RequiredItemMissing(t *testing.T) {
	// Strip the IMAGE reference out of an otherwise complete manifest
	root := manifestRoot()
	kept := root.Children[:0:0]
	for _, child := range root.Children {
		if child.ValueType == dataset.VTImage {
			continue
		}
		kept = append(kept, child)
	}
	root.Children = kept

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs := 0
	for _, issue := range issues {
		if issue.Severity != dp.SeverityError {
			continue
		}
		errs++
		if issue.Code != dp.IssueTypeRequired {
			t.Errorf("code = %s; want required", issue.Code)
		}
		if !strings.Contains(issue.Diagnostics, "required content item missing: IMAGE content item") {
			t.Errorf("diagnostics = %q", issue.Diagnostics)
		}
	}
	if errs != 1 {
		t.Errorf("errors = %d; want 1: %v", errs, issues)
	}
}

func TestWalk_ConditionallyRequiredMissing(t *testing.T) {
	// No language, no observer, no library: three advisory rules unmet
	root := item("", dataset.VTContainer, &codeManifest,
		item(dataset.RelContains, dataset.VTImage, nil),
	)
	root.TemplateID = "2010"
	root.MappingResource = "DCMR"

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs, warns, _ := severityCounts(issues)
	if errs != 0 {
		t.Fatalf("errors = %d; want 0: %v", errs, issues)
	}
	if warns != 3 {
		t.Errorf("warnings = %d; want 3: %v", warns, issues)
	}
	for _, issue := range issues {
		if issue.Severity == dp.SeverityWarning && !strings.Contains(issue.Diagnostics, "conditionally required item missing") {
			t.Errorf("diagnostics = %q", issue.Diagnostics)
		}
	}
}

func TestWalk_RequiredConceptUpgrade(t *testing.T) {
	// Without an upgrade the absent Image Library is a warning; a
	// profile naming it in RequiredConcepts makes it an error.
	root := item("", dataset.VTContainer, &codeManifest,
		item(dataset.RelHasConceptMod, dataset.VTCode, &codeLanguage),
		item(dataset.RelHasObsContext, dataset.VTPName, &codeObserver),
		item(dataset.RelContains, dataset.VTImage, nil),
	)
	root.TemplateID = "2010"
	root.MappingResource = "DCMR"

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{
		TemplateIDMandatory: true,
		RequiredConcepts:    []dataset.ConceptCode{codeImageLibrary},
	})

	errs, warns, _ := severityCounts(issues)
	if errs != 1 || warns != 0 {
		t.Fatalf("errors/warnings = %d/%d; want 1/0: %v", errs, warns, issues)
	}
	if !strings.Contains(issues[0].Diagnostics, "required content item missing") ||
		!strings.Contains(issues[0].Diagnostics, "Image Library") {
		t.Errorf("diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestWalk_WrongValueType(t *testing.T) {
	root := manifestRoot()
	// Language item declared as TEXT instead of CODE
	root.Children[0].ValueType = dataset.VTText

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs, _, _ := severityCounts(issues)
	if errs != 1 {
		t.Fatalf("errors = %d; want 1: %v", errs, issues)
	}
	issue := issues[0]
	if issue.Code != dp.IssueTypeValue {
		t.Errorf("code = %s; want value", issue.Code)
	}
	if !strings.Contains(issue.Diagnostics, "expected value type CODE but found TEXT") {
		t.Errorf("diagnostics = %q", issue.Diagnostics)
	}
}

func TestWalk_NestedTemplateViolation(t *testing.T) {
	root := manifestRoot()
	// Empty the image library group: its required IMAGE entry vanishes
	group := root.Children[3].Children[0]
	group.Children = nil
	group.Path = "ContentSequence[3].ContentSequence[0]"

	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	errs, _, _ := severityCounts(issues)
	if errs != 1 {
		t.Fatalf("errors = %d; want 1: %v", errs, issues)
	}
	issue := issues[0]
	if !strings.Contains(issue.Diagnostics, "required content item missing: IMAGE content item") {
		t.Errorf("diagnostics = %q", issue.Diagnostics)
	}
	if issue.Expression[0] != "ContentSequence[3].ContentSequence[0]" {
		t.Errorf("path = %v; want the nested group", issue.Expression)
	}
}

func TestWalk_NestedTemplateIDOnlyCheckedWhenPresent(t *testing.T) {
	root := manifestRoot()
	library := root.Children[3]

	// Absent nested identification is silent
	issues := Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	if errs, warns, _ := severityCounts(issues); errs != 0 || warns != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}

	// A wrong one is flagged
	library.TemplateID = "9999"
	library.MappingResource = "DCMR"
	issues = Walk(catalog.Default(), kosTemplate(t), root, Options{TemplateIDMandatory: true})
	_, warns, _ := severityCounts(issues)
	if warns != 1 {
		t.Fatalf("warnings = %d; want 1: %v", warns, issues)
	}
	if !strings.Contains(issues[0].Diagnostics, `does not identify the expected template "1600"`) {
		t.Errorf("diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestWalk_UnknownSubTemplate(t *testing.T) {
	c := catalog.New()
	tmpl := &catalog.Template{
		MappingResource: "99SITE",
		ID:              "1",
		Rules: []catalog.Rule{{
			Relationship: dataset.RelContains,
			Concept:      &codeImageLibrary,
			ValueType:    dataset.VTContainer,
			Requirement:  catalog.Required,
			SubTemplate:  "404",
		}},
	}
	if err := c.Register(tmpl); err != nil {
		t.Fatal(err)
	}

	root := item("", dataset.VTContainer, nil,
		item(dataset.RelContains, dataset.VTContainer, &codeImageLibrary),
	)
	root.TemplateID = "1"
	root.MappingResource = "99SITE"

	issues := Walk(c, tmpl, root, Options{})
	_, warns, _ := severityCounts(issues)
	if warns != 1 {
		t.Fatalf("warnings = %d; want 1: %v", warns, issues)
	}
	if !strings.Contains(issues[0].Diagnostics, "no template definition for 99SITE:404") {
		t.Errorf("diagnostics = %q", issues[0].Diagnostics)
	}
}

func TestWalk_CycleGuard(t *testing.T) {
	// A self-recursive template definition meeting a content tree that
	// loops back on itself must terminate with a structure error.
	c := catalog.New()
	tmpl := &catalog.Template{
		MappingResource: "99SITE",
		ID:              "R",
		Rules: []catalog.Rule{{
			Relationship: dataset.RelContains,
			Concept:      &codeImageLibrary,
			ValueType:    dataset.VTContainer,
			Requirement:  catalog.Optional,
			SubTemplate:  "R",
		}},
	}
	if err := c.Register(tmpl); err != nil {
		t.Fatal(err)
	}

	a := item(dataset.RelContains, dataset.VTContainer, &codeImageLibrary)
	b := item(dataset.RelContains, dataset.VTContainer, &codeImageLibrary, a)
	a.Children = []*dataset.Item{b}
	a.TemplateID = "R"
	a.MappingResource = "99SITE"

	issues := Walk(c, tmpl, a, Options{})

	found := false
	for _, issue := range issues {
		if issue.Code == dp.IssueTypeStructure && strings.Contains(issue.Diagnostics, "structural cycle detected") {
			found = true
		}
	}
	if !found {
		t.Errorf("cycle not reported: %v", issues)
	}
}

func TestWalk_NilInputs(t *testing.T) {
	if issues := Walk(catalog.Default(), nil, manifestRoot(), Options{}); issues != nil {
		t.Errorf("Walk with nil template = %v; want nil", issues)
	}
	if issues := Walk(catalog.Default(), kosTemplate(t), nil, Options{}); issues != nil {
		t.Errorf("Walk with nil root = %v; want nil", issues)
	}
}
