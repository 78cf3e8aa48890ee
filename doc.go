// Package dicompolice validates DICOM Key Object Selection (KOS) manifest
// documents against IHE interoperability profiles.
//
// The engine walks a parsed attribute tree and its nested content
// sequences, applies profile-specific template rules, and produces a
// categorized diagnostic report with severities and structural paths.
//
// # Quick Start
//
//	import (
//	    dp "github.com/nhermab/DICOMPolice-sub004"
//	    "github.com/nhermab/DICOMPolice-sub004/engine"
//	)
//
//	validator, err := engine.New(ctx, dp.ProfileXDSIManifest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := validator.Validate(ctx, manifestBytes)
//	if result.HasErrors() {
//	    for _, issue := range result.Errors() {
//	        fmt.Println(issue.Diagnostics)
//	    }
//	}
//	result.Release() // Return to pool for better performance
//
// # Validation Checks
//
// Validation is performed in checks, each handling one aspect:
//
//   - Content type: the declared SOP Class UID is known, unknown, or a
//     miscategorized transfer syntax identifier
//   - Template: the content tree satisfies the manifest template (TID 2010)
//     and any nested templates such as the Image Library (TID 1600)
//   - Empty sequences: a present sequence must have at least one item
//   - Private attributes: private groups require an owning creator element
//
// Each check is independent; a failing check never prevents the others
// from running, so callers always receive the fullest diagnostic picture
// for a structurally parseable document. The only hard dependency is the
// binary envelope pre-check, which short-circuits the run on failure.
//
// # Profiles
//
// The active IHE profile (ProfileXDSIManifest, ProfileMADO, ProfileNone)
// is an explicit parameter threaded through every call that needs it.
// A validation run is a pure function of (attribute tree, profile) against
// the immutable rule catalog, so runs may execute fully in parallel across
// documents.
//
// # Functional Options
//
//	validator, err := engine.New(ctx, dp.ProfileNone,
//	    dp.WithVerbose(false),
//	    dp.WithMaxErrors(100),
//	    dp.WithWorkerCount(runtime.NumCPU()),
//	)
package dicompolice
