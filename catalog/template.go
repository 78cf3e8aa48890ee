package catalog

import (
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// RequirementLevel states how strongly a template expects a child
// content item.
type RequirementLevel int

const (
	// Required items must be present; absence is an error.
	Required RequirementLevel = iota
	// RequiredIfApplicable items are mandatory only in circumstances the
	// engine cannot decide; absence is a warning.
	RequiredIfApplicable
	// Optional items may be absent without comment.
	Optional
	// Conditional items depend on a condition outside the template data;
	// treated like RequiredIfApplicable by the walker.
	Conditional
)

// String returns the requirement level name.
func (r RequirementLevel) String() string {
	switch r {
	case Required:
		return "required"
	case RequiredIfApplicable:
		return "required-if-applicable"
	case Optional:
		return "optional"
	case Conditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// Rule is one expected child entry of a template.
type Rule struct {
	// Relationship the child must declare to its parent.
	Relationship dataset.RelationshipType

	// Concept identifies the child by coded concept name. Nil rules
	// match on (relationship, value type) instead, which is how
	// reference items without concept names are described.
	Concept *dataset.ConceptCode

	// ValueType the child must carry.
	ValueType dataset.ValueType

	// Requirement level of this entry.
	Requirement RequirementLevel

	// SubTemplate names the template (same mapping resource) governing
	// the child's own children, when the child is a container.
	SubTemplate string
}

// Matches reports whether a content item satisfies this rule's identity,
// i.e. relationship plus concept code (or value type for concept-free
// rules). Value type conformance is checked separately so a matched item
// with the wrong value type can be reported precisely.
func (r Rule) Matches(item *dataset.Item) bool {
	if item.Relationship != r.Relationship {
		return false
	}
	if r.Concept != nil {
		return item.HasConcept(*r.Concept)
	}
	return item.ValueType == r.ValueType
}

// Label returns a human-readable identifier for the rule, used in
// diagnostics.
func (r Rule) Label() string {
	if r.Concept != nil {
		return r.Concept.Meaning + " " + r.Concept.String()
	}
	return string(r.ValueType) + " content item"
}

// Key identifies a template by mapping resource and template identifier.
type Key struct {
	MappingResource string
	ID              string
}

// String returns "resource:id".
func (k Key) String() string {
	return k.MappingResource + ":" + k.ID
}

// Template is an ordered set of rules for a content item's children,
// identified by a (mapping resource, template identifier) pair.
type Template struct {
	MappingResource string
	ID              string
	Name            string
	Rules           []Rule
}

// Key returns the template's catalog key.
func (t *Template) Key() Key {
	return Key{MappingResource: t.MappingResource, ID: t.ID}
}
