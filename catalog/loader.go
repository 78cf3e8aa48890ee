package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhermab/DICOMPolice-sub004/cache"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/logger"
)

// templateFile is the on-disk JSON form of a template definition.
type templateFile struct {
	MappingResource string     `json:"mappingResource"`
	TemplateID      string     `json:"templateId"`
	Name            string     `json:"name"`
	Rules           []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	Relationship string    `json:"relationship"`
	ValueType    string    `json:"valueType"`
	Code         *codeJSON `json:"code,omitempty"`
	Requirement  string    `json:"requirement"`
	SubTemplate  string    `json:"subTemplate,omitempty"`
}

type codeJSON struct {
	Value   string `json:"value"`
	Scheme  string `json:"scheme"`
	Meaning string `json:"meaning,omitempty"`
}

// Loader reads site-supplied template definition files that extend the
// built-in catalog. Parsed files are cached by path so repeated loads
// (e.g. one engine per request) stay cheap.
type Loader struct {
	cache *cache.Cache[string, *Template]
	log   *logger.Logger
}

// NewLoader creates a template definition loader.
func NewLoader() *Loader {
	return &Loader{
		cache: cache.New[string, *Template](128),
		log:   logger.Default(),
	}
}

// LoadFile parses one template definition file.
func (l *Loader) LoadFile(path string) (*Template, error) {
	if t, ok := l.cache.Get(path); ok {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template definition: %w", err)
	}

	var tf templateFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parse template definition %s: %w", path, err)
	}

	t, err := tf.toTemplate()
	if err != nil {
		return nil, fmt.Errorf("template definition %s: %w", path, err)
	}

	l.cache.Set(path, t)
	return t, nil
}

// LoadDir parses every .json file in dir and registers the templates
// into the catalog. Files that fail to parse are skipped with a logged
// warning; a missing directory is an error.
func (l *Loader) LoadDir(dir string, c *Catalog) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read template directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		t, err := l.LoadFile(path)
		if err != nil {
			l.log.Warn("skipping template definition %s: %v", path, err)
			continue
		}
		if err := c.Register(t); err != nil {
			l.log.Warn("skipping template definition %s: %v", path, err)
			continue
		}
		loaded++
	}

	l.log.Debug("loaded %d template definition(s) from %s", loaded, dir)
	return nil
}

func (tf *templateFile) toTemplate() (*Template, error) {
	if tf.MappingResource == "" || tf.TemplateID == "" {
		return nil, fmt.Errorf("missing mappingResource or templateId")
	}

	t := &Template{
		MappingResource: tf.MappingResource,
		ID:              tf.TemplateID,
		Name:            tf.Name,
		Rules:           make([]Rule, 0, len(tf.Rules)),
	}

	for i, rj := range tf.Rules {
		req, err := parseRequirement(rj.Requirement)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rule := Rule{
			Relationship: dataset.RelationshipType(rj.Relationship),
			ValueType:    dataset.ValueType(rj.ValueType),
			Requirement:  req,
			SubTemplate:  rj.SubTemplate,
		}
		if rj.Code != nil {
			rule.Concept = &dataset.ConceptCode{
				Value:   rj.Code.Value,
				Scheme:  rj.Code.Scheme,
				Meaning: rj.Code.Meaning,
			}
		}
		t.Rules = append(t.Rules, rule)
	}

	return t, nil
}

func parseRequirement(s string) (RequirementLevel, error) {
	switch strings.ToLower(s) {
	case "required", "m", "1":
		return Required, nil
	case "required-if-applicable", "mc", "1c":
		return RequiredIfApplicable, nil
	case "optional", "u", "", "3":
		return Optional, nil
	case "conditional", "c", "2c":
		return Conditional, nil
	default:
		return Optional, fmt.Errorf("unknown requirement level %q", s)
	}
}
