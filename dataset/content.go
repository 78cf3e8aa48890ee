package dataset

// ValueType classifies what kind of value a content item carries.
type ValueType string

// Content item value types.
const (
	VTContainer ValueType = "CONTAINER"
	VTCode      ValueType = "CODE"
	VTNum       ValueType = "NUM"
	VTText      ValueType = "TEXT"
	VTUIDRef    ValueType = "UIDREF"
	VTPName     ValueType = "PNAME"
	VTDate      ValueType = "DATE"
	VTTime      ValueType = "TIME"
	VTDateTime  ValueType = "DATETIME"
	VTImage     ValueType = "IMAGE"
	VTComposite ValueType = "COMPOSITE"
	VTWaveform  ValueType = "WAVEFORM"
)

// RelationshipType describes how a content item relates to its parent.
type RelationshipType string

// Content item relationship types.
const (
	RelContains      RelationshipType = "CONTAINS"
	RelHasConceptMod RelationshipType = "HAS CONCEPT MOD"
	RelHasObsContext RelationshipType = "HAS OBS CONTEXT"
	RelHasAcqContext RelationshipType = "HAS ACQ CONTEXT"
	RelHasProperties RelationshipType = "HAS PROPERTIES"
	RelInferredFrom  RelationshipType = "INFERRED FROM"
	RelSelectedFrom  RelationshipType = "SELECTED FROM"
)

// Item is one node of the structured-report content tree. For non-root
// items the relationship type describes the link to the parent; the root
// item has an empty relationship.
type Item struct {
	// Path is the structural locator of this item within the document,
	// e.g. "ContentSequence[2]". The root item's path is "".
	Path string

	ValueType    ValueType
	Relationship RelationshipType

	// ConceptName names what this item represents; nil when the item
	// carries no concept name (typical for IMAGE reference items).
	ConceptName *ConceptCode

	// TemplateID and MappingResource carry the item's declared template
	// identification, when present.
	TemplateID      string
	MappingResource string

	// Children are the items of the nested content sequence, in
	// document order. Nil for leaf items.
	Children []*Item

	// DS is the underlying dataset of this item.
	DS *Dataset
}

// BuildContentTree extracts the content tree from a parsed dataset.
// The root item is the document itself: its value type, concept name,
// and template identification come from the top-level attributes, and
// its children from the top-level ContentSequence.
//
// The extraction is tolerant: missing attributes produce zero values,
// never errors. Deciding whether a missing attribute is a defect is the
// walker's job, not the tree builder's.
func BuildContentTree(ds *Dataset) *Item {
	if ds == nil {
		return nil
	}
	return buildItem(ds, "")
}

func buildItem(ds *Dataset, path string) *Item {
	item := &Item{
		Path:         path,
		ValueType:    ValueType(ds.String(TagValueType)),
		Relationship: RelationshipType(ds.String(TagRelationshipType)),
		DS:           ds,
	}

	if items, ok := ds.Sequence(TagConceptNameCodeSeq); ok && len(items) > 0 {
		code := codeFromDataset(items[0])
		item.ConceptName = &code
	}

	if items, ok := ds.Sequence(TagContentTemplateSeq); ok && len(items) > 0 {
		item.TemplateID = items[0].String(TagTemplateIdentifier)
		item.MappingResource = items[0].String(TagMappingResource)
	}

	// Items that reference composite objects get their value type from
	// the presence of a ReferencedSOPSequence when (0040,a040) is absent.
	if item.ValueType == "" {
		if _, ok := ds.Sequence(TagReferencedSOPSequence); ok {
			item.ValueType = VTComposite
		}
	}

	if children, ok := ds.Sequence(TagContentSeq); ok {
		item.Children = make([]*Item, 0, len(children))
		for i, child := range children {
			childPath := SequencePath(path, TagContentSeq, i)
			item.Children = append(item.Children, buildItem(child, childPath))
		}
	}

	return item
}

// HasConcept reports whether the item's concept name matches the given
// code on (value, scheme).
func (it *Item) HasConcept(code ConceptCode) bool {
	return it.ConceptName != nil && it.ConceptName.Equal(code)
}
