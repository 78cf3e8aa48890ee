package phase

import (
	"context"
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

// ContentTypePhase classifies the document's declared content-type
// identifier (SOP Class UID). Exactly one of three outcomes applies,
// checked in this order:
//
//   - miscategorized: the identifier is a transfer syntax UID (error)
//   - known: the identifier is a known SOP Class (info)
//   - unknown: neither (warning)
//
// A secondary check flags use of the Verification SOP Class, which in a
// manifest almost always indicates a copy-paste mistake.
type ContentTypePhase struct{}

// NewContentTypePhase creates the content-type sanity check.
func NewContentTypePhase() *ContentTypePhase {
	return &ContentTypePhase{}
}

// Name returns the check name.
func (p *ContentTypePhase) Name() string {
	return string(pipeline.PhaseIDContentType)
}

// Validate performs the content-type sanity check.
func (p *ContentTypePhase) Validate(ctx context.Context, pctx *pipeline.Context) []dp.Issue {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	uid := pctx.SOPClassUID
	if uid == "" {
		return []dp.Issue{ErrorIssue(dp.IssueTypeStructure,
			"document declares no content-type identifier (SOPClassUID missing)",
			dataset.TagSOPClassUID.Keyword(), p.Name())}
	}

	var issues []dp.Issue
	path := dataset.TagSOPClassUID.Keyword()

	switch {
	case catalog.IsTransferSyntax(uid):
		issues = append(issues, ErrorIssue(dp.IssueTypeCodeInvalid,
			fmt.Sprintf("contains a transport-syntax identifier %q instead of a content-type identifier; likely copy-paste error", uid),
			path, p.Name()))
	case catalog.IsKnownSOPClass(uid):
		if name, _ := catalog.SOPClassName(uid); pctx.Options == nil || pctx.Options.Verbose {
			issues = append(issues, InfoIssue(dp.IssueTypeInformational,
				fmt.Sprintf("references known content type: %s", name),
				path, p.Name()))
		}
	default:
		issues = append(issues, WarningIssue(dp.IssueTypeCodeInvalid,
			fmt.Sprintf("references unknown or non-standard content-type identifier %q; verify this is valid", uid),
			path, p.Name()))
	}

	if uid == catalog.UIDVerification {
		issues = append(issues, WarningIssue(dp.IssueTypeCodeInvalid,
			"Verification SOP Class is unusual in this document type; might indicate a copy-paste error",
			path, p.Name()))
	}

	return issues
}
