package catalog

import (
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// Concept codes used by the built-in templates.
var (
	CodeManifest = dataset.ConceptCode{Value: "113030", Scheme: "DCM", Meaning: "Manifest"}

	codeDocumentTitleModifier = dataset.ConceptCode{Value: "113011", Scheme: "DCM", Meaning: "Document Title Modifier"}
	codeKeyObjectDescription  = dataset.ConceptCode{Value: "113012", Scheme: "DCM", Meaning: "Key Object Description"}
	codeLanguageOfContent     = dataset.ConceptCode{Value: "121049", Scheme: "DCM", Meaning: "Language of Content Item and Descendants"}
	codePersonObserverName    = dataset.ConceptCode{Value: "121008", Scheme: "DCM", Meaning: "Person Observer Name"}

	// CodeImageLibrary names the Image Library container of a manifest.
	CodeImageLibrary = dataset.ConceptCode{Value: "111028", Scheme: "DCM", Meaning: "Image Library"}

	codeImageLibraryGroup = dataset.ConceptCode{Value: "126200", Scheme: "DCM", Meaning: "Image Library Group"}
	codeStudyDate         = dataset.ConceptCode{Value: "111060", Scheme: "DCM", Meaning: "Study Date"}
	codeStudyTime         = dataset.ConceptCode{Value: "111061", Scheme: "DCM", Meaning: "Study Time"}
	codeModality          = dataset.ConceptCode{Value: "121139", Scheme: "DCM", Meaning: "Modality"}
)

// DefaultMappingResource is the mapping resource of the built-in
// templates.
const DefaultMappingResource = "DCMR"

// Built-in template identifiers.
const (
	TemplateKeyObjectSelection = "2010"
	TemplateImageLibrary       = "1600"
	TemplateImageLibraryEntry  = "1601"
)

// builtinTemplates defines the templates shipped with the engine.
func builtinTemplates() []*Template {
	return []*Template{
		{
			MappingResource: DefaultMappingResource,
			ID:              TemplateKeyObjectSelection,
			Name:            "Key Object Selection",
			Rules: []Rule{
				{
					Relationship: dataset.RelHasConceptMod,
					Concept:      &codeLanguageOfContent,
					ValueType:    dataset.VTCode,
					Requirement:  RequiredIfApplicable,
				},
				{
					Relationship: dataset.RelHasConceptMod,
					Concept:      &codeDocumentTitleModifier,
					ValueType:    dataset.VTCode,
					Requirement:  Optional,
				},
				{
					Relationship: dataset.RelHasObsContext,
					Concept:      &codePersonObserverName,
					ValueType:    dataset.VTPName,
					Requirement:  RequiredIfApplicable,
				},
				{
					Relationship: dataset.RelContains,
					Concept:      &codeKeyObjectDescription,
					ValueType:    dataset.VTText,
					Requirement:  Optional,
				},
				{
					Relationship: dataset.RelContains,
					ValueType:    dataset.VTImage,
					Requirement:  Required,
				},
				{
					Relationship: dataset.RelContains,
					Concept:      &CodeImageLibrary,
					ValueType:    dataset.VTContainer,
					Requirement:  RequiredIfApplicable,
					SubTemplate:  TemplateImageLibrary,
				},
			},
		},
		{
			MappingResource: DefaultMappingResource,
			ID:              TemplateImageLibrary,
			Name:            "Image Library",
			Rules: []Rule{
				{
					Relationship: dataset.RelContains,
					Concept:      &codeImageLibraryGroup,
					ValueType:    dataset.VTContainer,
					Requirement:  Required,
					SubTemplate:  TemplateImageLibraryEntry,
				},
			},
		},
		{
			MappingResource: DefaultMappingResource,
			ID:              TemplateImageLibraryEntry,
			Name:            "Image Library Entry",
			Rules: []Rule{
				{
					Relationship: dataset.RelContains,
					ValueType:    dataset.VTImage,
					Requirement:  Required,
				},
				{
					Relationship: dataset.RelHasAcqContext,
					Concept:      &codeStudyDate,
					ValueType:    dataset.VTDate,
					Requirement:  Optional,
				},
				{
					Relationship: dataset.RelHasAcqContext,
					Concept:      &codeStudyTime,
					ValueType:    dataset.VTTime,
					Requirement:  Optional,
				},
				{
					Relationship: dataset.RelHasAcqContext,
					Concept:      &codeModality,
					ValueType:    dataset.VTCode,
					Requirement:  Optional,
				},
			},
		},
	}
}
