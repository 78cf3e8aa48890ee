package catalog

import (
	"fmt"
	"sync"
)

// Catalog is a lookup of templates by (mapping resource, template id).
// A Catalog is immutable once handed to the engine; Register is only
// valid during construction.
type Catalog struct {
	templates map[Key]*Template
}

// New creates a catalog containing the built-in templates.
func New() *Catalog {
	c := &Catalog{
		templates: make(map[Key]*Template, 8),
	}
	for _, t := range builtinTemplates() {
		c.templates[t.Key()] = t
	}
	return c
}

// Register adds or replaces a template. It returns an error for
// templates without an identity, so loader mistakes surface early.
func (c *Catalog) Register(t *Template) error {
	if t == nil || t.MappingResource == "" || t.ID == "" {
		return fmt.Errorf("catalog: template must have a mapping resource and id")
	}
	c.templates[t.Key()] = t
	return nil
}

// TemplateFor looks up a template. Unknown templates are a caller
// error, not an engine fault: the second return value is false and no
// error is raised.
func (c *Catalog) TemplateFor(mappingResource, id string) (*Template, bool) {
	t, ok := c.templates[Key{MappingResource: mappingResource, ID: id}]
	return t, ok
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the shared built-in catalog, constructed once at
// first use.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = New()
	})
	return defaultCatalog
}
