// Package dataset defines the attribute-tree data model consumed by the
// validation engine: tags, elements, datasets, coded concepts, and the
// structured-report content tree extracted from them.
//
// Trees are produced by an external parser per validation run and are
// read-only to the engine.
package dataset

import "fmt"

// Tag identifies a DICOM attribute by group and element number.
type Tag struct {
	Group   uint16
	Element uint16
}

// String returns the conventional "(gggg,eeee)" rendering.
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

// IsPrivate reports whether the tag belongs to a private (odd) group.
// Group length elements and the standard groups 0001/0003/0005/0007 are
// reserved and not considered private data.
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1 && t.Group > 0x0008
}

// IsPrivateCreator reports whether the tag is a private creator element,
// i.e. an element in the reserved block (gggg,0010)-(gggg,00ff) of a
// private group.
func (t Tag) IsPrivateCreator() bool {
	return t.IsPrivate() && t.Element >= 0x0010 && t.Element <= 0x00ff
}

// Compare returns -1, 0, or 1 ordering tags by (group, element).
func (t Tag) Compare(other Tag) int {
	switch {
	case t.Group < other.Group:
		return -1
	case t.Group > other.Group:
		return 1
	case t.Element < other.Element:
		return -1
	case t.Element > other.Element:
		return 1
	default:
		return 0
	}
}

// Tags used by the validation engine.
var (
	TagFileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	TagMediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	TagTransferSyntaxUID              = Tag{0x0002, 0x0010}

	TagSOPClassUID    = Tag{0x0008, 0x0016}
	TagSOPInstanceUID = Tag{0x0008, 0x0018}

	TagCodeValue              = Tag{0x0008, 0x0100}
	TagCodingSchemeDesignator = Tag{0x0008, 0x0102}
	TagCodeMeaning            = Tag{0x0008, 0x0104}
	TagMappingResource        = Tag{0x0008, 0x0105}

	TagReferencedSOPSequence    = Tag{0x0008, 0x1199}
	TagReferencedSOPClassUID    = Tag{0x0008, 0x1150}
	TagReferencedSOPInstanceUID = Tag{0x0008, 0x1155}

	TagStudyInstanceUID  = Tag{0x0020, 0x000d}
	TagSeriesInstanceUID = Tag{0x0020, 0x000e}

	TagRelationshipType    = Tag{0x0040, 0xa010}
	TagValueType           = Tag{0x0040, 0xa040}
	TagConceptNameCodeSeq  = Tag{0x0040, 0xa043}
	TagContinuityOfContent = Tag{0x0040, 0xa050}
	TagTextValue           = Tag{0x0040, 0xa160}
	TagConceptCodeSeq      = Tag{0x0040, 0xa168}
	TagEvidenceSeq         = Tag{0x0040, 0xa375} // CurrentRequestedProcedureEvidenceSequence
	TagContentTemplateSeq  = Tag{0x0040, 0xa504}
	TagContentSeq          = Tag{0x0040, 0xa730}
	TagTemplateIdentifier  = Tag{0x0040, 0xdb00}
)

// tagNames maps the tags the engine reports on to their keyword form,
// used when building structural paths.
var tagNames = map[Tag]string{
	TagFileMetaInformationGroupLength: "FileMetaInformationGroupLength",
	TagMediaStorageSOPClassUID:        "MediaStorageSOPClassUID",
	TagTransferSyntaxUID:              "TransferSyntaxUID",
	TagSOPClassUID:                    "SOPClassUID",
	TagSOPInstanceUID:                 "SOPInstanceUID",
	TagCodeValue:                      "CodeValue",
	TagCodingSchemeDesignator:         "CodingSchemeDesignator",
	TagCodeMeaning:                    "CodeMeaning",
	TagMappingResource:                "MappingResource",
	TagReferencedSOPSequence:          "ReferencedSOPSequence",
	TagReferencedSOPClassUID:          "ReferencedSOPClassUID",
	TagReferencedSOPInstanceUID:       "ReferencedSOPInstanceUID",
	TagStudyInstanceUID:               "StudyInstanceUID",
	TagSeriesInstanceUID:              "SeriesInstanceUID",
	TagRelationshipType:               "RelationshipType",
	TagValueType:                      "ValueType",
	TagConceptNameCodeSeq:             "ConceptNameCodeSequence",
	TagContinuityOfContent:            "ContinuityOfContent",
	TagTextValue:                      "TextValue",
	TagConceptCodeSeq:                 "ConceptCodeSequence",
	TagEvidenceSeq:                    "CurrentRequestedProcedureEvidenceSequence",
	TagContentTemplateSeq:             "ContentTemplateSequence",
	TagContentSeq:                     "ContentSequence",
	TagTemplateIdentifier:             "TemplateIdentifier",
}

// Keyword returns the DICOM keyword for known tags, or the "(gggg,eeee)"
// form for everything else.
func (t Tag) Keyword() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return t.String()
}
