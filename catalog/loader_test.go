package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

const siteTemplateJSON = `{
  "mappingResource": "99SITE",
  "templateId": "100",
  "name": "Site Manifest Extension",
  "rules": [
    {
      "relationship": "CONTAINS",
      "valueType": "TEXT",
      "code": {"value": "S100", "scheme": "99SITE", "meaning": "Site Note"},
      "requirement": "required"
    },
    {
      "relationship": "CONTAINS",
      "valueType": "IMAGE",
      "requirement": "1c"
    }
  ]
}`

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "site.json", siteTemplateJSON)

	tmpl, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}

	if tmpl.MappingResource != "99SITE" || tmpl.ID != "100" {
		t.Errorf("template identity = %s:%s; want 99SITE:100", tmpl.MappingResource, tmpl.ID)
	}
	if len(tmpl.Rules) != 2 {
		t.Fatalf("len(Rules) = %d; want 2", len(tmpl.Rules))
	}

	note := tmpl.Rules[0]
	if note.Requirement != Required {
		t.Errorf("rule 0 requirement = %s; want required", note.Requirement)
	}
	if note.Concept == nil || note.Concept.Value != "S100" || note.Concept.Scheme != "99SITE" {
		t.Errorf("rule 0 concept = %v", note.Concept)
	}
	if note.Relationship != dataset.RelContains || note.ValueType != dataset.VTText {
		t.Errorf("rule 0 identity = %s/%s", note.Relationship, note.ValueType)
	}

	image := tmpl.Rules[1]
	if image.Concept != nil {
		t.Error("rule 1 must be concept-free")
	}
	if image.Requirement != Conditional {
		t.Errorf("rule 1 requirement = %s; want conditional", image.Requirement)
	}
}

func TestLoadFile_Caches(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, "site.json", siteTemplateJSON)

	l := NewLoader()
	first, err := l.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the file; the cached template must still be served
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := l.LoadFile(path)
	if err != nil {
		t.Fatalf("cached LoadFile() = %v", err)
	}
	if first != second {
		t.Error("LoadFile must return the cached template for a known path")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{not json`},
		{"missing identity", `{"name": "anonymous", "rules": []}`},
		{"bad requirement", `{"mappingResource": "X", "templateId": "1", "rules": [{"relationship": "CONTAINS", "valueType": "TEXT", "requirement": "sometimes"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemplate(t, dir, tt.name+".json", tt.content)
			if _, err := NewLoader().LoadFile(path); err == nil {
				t.Error("LoadFile accepted a broken definition")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "site.json", siteTemplateJSON)
	writeTemplate(t, dir, "broken.json", `{not json`)
	writeTemplate(t, dir, "ignored.yaml", "not: json")

	c := New()
	before := c.Len()
	if err := NewLoader().LoadDir(dir, c); err != nil {
		t.Fatalf("LoadDir() = %v", err)
	}

	// The broken and non-JSON files are skipped, not fatal
	if c.Len() != before+1 {
		t.Errorf("Len() = %d; want %d", c.Len(), before+1)
	}
	if _, ok := c.TemplateFor("99SITE", "100"); !ok {
		t.Error("site template not registered")
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	if err := NewLoader().LoadDir("/does/not/exist", New()); err == nil {
		t.Error("LoadDir must fail for a missing directory")
	}
}

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		in   string
		want RequirementLevel
	}{
		{"required", Required},
		{"M", Required},
		{"1", Required},
		{"required-if-applicable", RequiredIfApplicable},
		{"MC", RequiredIfApplicable},
		{"1C", RequiredIfApplicable},
		{"optional", Optional},
		{"U", Optional},
		{"", Optional},
		{"3", Optional},
		{"conditional", Conditional},
		{"2C", Conditional},
	}

	for _, tt := range tests {
		got, err := parseRequirement(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseRequirement(%q) = (%s, %v); want %s", tt.in, got, err, tt.want)
		}
	}

	if _, err := parseRequirement("sometimes"); err == nil {
		t.Error("parseRequirement accepted an unknown level")
	}
}
