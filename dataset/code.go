package dataset

import "fmt"

// ConceptCode is a coded identifier naming what a content item
// represents: a code value, the scheme that defines it, and a
// human-readable meaning.
type ConceptCode struct {
	Value   string
	Scheme  string
	Meaning string
}

// Equal compares two codes on (value, scheme) only; the meaning is
// descriptive and never participates in rule matching.
func (c ConceptCode) Equal(other ConceptCode) bool {
	return c.Value == other.Value && c.Scheme == other.Scheme
}

// IsZero reports whether the code is empty.
func (c ConceptCode) IsZero() bool {
	return c.Value == "" && c.Scheme == ""
}

// String renders the code in the conventional (value, scheme, "meaning")
// triplet form.
func (c ConceptCode) String() string {
	return fmt.Sprintf("(%s, %s, %q)", c.Value, c.Scheme, c.Meaning)
}

// codeFromDataset reads a code sequence item into a ConceptCode.
func codeFromDataset(d *Dataset) ConceptCode {
	return ConceptCode{
		Value:   d.String(TagCodeValue),
		Scheme:  d.String(TagCodingSchemeDesignator),
		Meaning: d.String(TagCodeMeaning),
	}
}
