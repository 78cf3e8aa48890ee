package dataset

// Element is one attribute in a dataset: a tag, a value representation,
// and either a scalar/multi-valued value or, for SQ elements, an ordered
// list of nested item datasets.
type Element struct {
	Tag Tag

	// VR is the value representation, e.g. "UI", "CS", "SQ".
	VR string

	// Value holds non-sequence values. String VRs are stored as []string.
	Value any

	// Items holds the nested datasets of an SQ element. It is non-nil
	// (possibly empty) exactly when VR == "SQ", so a present-but-empty
	// sequence is distinguishable from an absent one.
	Items []*Dataset
}

// IsSequence reports whether the element is an SQ element.
func (e *Element) IsSequence() bool {
	return e.Items != nil
}

// Strings returns the element's value as a string slice, or nil if the
// value is not string-typed.
func (e *Element) Strings() []string {
	s, _ := e.Value.([]string)
	return s
}

// FirstString returns the first string value, if any.
func (e *Element) FirstString() (string, bool) {
	s := e.Strings()
	if len(s) == 0 {
		return "", false
	}
	return s[0], true
}

// Dataset is an ordered collection of elements. Order is the order the
// parser produced, which for conforming files is ascending tag order.
type Dataset struct {
	Elements []*Element
}

// Find returns the element with the given tag, if present.
func (d *Dataset) Find(t Tag) (*Element, bool) {
	if d == nil {
		return nil, false
	}
	for _, e := range d.Elements {
		if e.Tag == t {
			return e, true
		}
	}
	return nil, false
}

// String returns the first string value of the element with the given
// tag, or "" if the element is absent or not string-typed.
func (d *Dataset) String(t Tag) string {
	e, ok := d.Find(t)
	if !ok {
		return ""
	}
	s, _ := e.FirstString()
	return s
}

// Sequence returns the item datasets of the sequence element with the
// given tag. The second return is false if the element is absent or not
// a sequence.
func (d *Dataset) Sequence(t Tag) ([]*Dataset, bool) {
	e, ok := d.Find(t)
	if !ok || !e.IsSequence() {
		return nil, false
	}
	return e.Items, true
}

// Add appends an element. Intended for parser adapters and tests; the
// validation engine itself never mutates a dataset.
func (d *Dataset) Add(e *Element) {
	d.Elements = append(d.Elements, e)
}
