package engine

import (
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// DocumentFamily identifies a class of documents that share a
// validation algorithm. Families are data, not types: adding one means
// adding catalog entries, not new code paths.
type DocumentFamily string

// Known document families.
const (
	// FamilyManifest covers Key Object Selection manifest documents.
	FamilyManifest DocumentFamily = "manifest"
)

// DocumentValidator describes how one (document family, profile)
// combination is validated: which root template applies and how strict
// template identification is.
type DocumentValidator struct {
	Family DocumentFamily

	// Name is a human-readable label for logging and output.
	Name string

	// RootTemplate is the template expected at the content root.
	RootTemplate catalog.Key

	// TemplateIDMandatory escalates missing template identification
	// from advisory to error.
	TemplateIDMandatory bool

	// RequiredConcepts lists concepts the profile promotes to mandatory.
	RequiredConcepts []dataset.ConceptCode
}

// families maps content-type identifiers to the family that validates
// them.
var families = map[string]DocumentFamily{
	catalog.UIDKeyObjectSelection: FamilyManifest,
}

// Select picks the validator for a document's declared content-type
// identifier under the given profile. An unmatched document type is a
// caller error, reported as such, never an internal fault.
func Select(sopClassUID string, profile dp.Profile) (*DocumentValidator, error) {
	family, ok := families[sopClassUID]
	if !ok {
		return nil, fmt.Errorf("no validator found for content-type identifier: %s", sopClassUID)
	}

	switch family {
	case FamilyManifest:
		return manifestValidator(profile), nil
	default:
		return nil, fmt.Errorf("no validator found for content-type identifier: %s", sopClassUID)
	}
}

// manifestValidator narrows manifest validation by profile.
func manifestValidator(profile dp.Profile) *DocumentValidator {
	v := &DocumentValidator{
		Family: FamilyManifest,
		Name:   "Key Object Selection manifest",
		RootTemplate: catalog.Key{
			MappingResource: catalog.DefaultMappingResource,
			ID:              catalog.TemplateKeyObjectSelection,
		},
		TemplateIDMandatory: profile.TemplateIDMandatory(),
	}

	// MADO retrieval descriptions depend on the Image Library, so the
	// profile promotes it from required-if-applicable to mandatory.
	if profile == dp.ProfileMADO {
		v.RequiredConcepts = []dataset.ConceptCode{catalog.CodeImageLibrary}
	}

	return v
}
