package phase

import (
	"context"
	"fmt"
	"sort"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
	"github.com/nhermab/DICOMPolice-sub004/pipeline"
)

// PrivateAttrsPhase scans the whole tree for private (odd-group)
// attributes. A private group with data elements but no owning creator
// element is structurally corrupt; a properly declared private group is
// still reported as a warning because private data hinders broad
// interoperability.
type PrivateAttrsPhase struct{}

// NewPrivateAttrsPhase creates the private-attribute hygiene check.
func NewPrivateAttrsPhase() *PrivateAttrsPhase {
	return &PrivateAttrsPhase{}
}

// Name returns the check name.
func (p *PrivateAttrsPhase) Name() string {
	return string(pipeline.PhaseIDPrivateAttrs)
}

// privateGroup accumulates findings for one private group number
// across the whole tree.
type privateGroup struct {
	elements   int
	hasCreator bool
	firstPath  string
}

// Validate scans for private attributes and reports per group.
func (p *PrivateAttrsPhase) Validate(ctx context.Context, pctx *pipeline.Context) []dp.Issue {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	groups := make(map[uint16]*privateGroup)

	walkDatasets(pctx.Dataset, "", func(ds *dataset.Dataset, path string) {
		for _, e := range ds.Elements {
			if !e.Tag.IsPrivate() {
				continue
			}
			g, ok := groups[e.Tag.Group]
			if !ok {
				g = &privateGroup{firstPath: dataset.JoinPath(path, e.Tag.String())}
				groups[e.Tag.Group] = g
			}
			if e.Tag.IsPrivateCreator() {
				g.hasCreator = true
			} else {
				g.elements++
			}
		}
	})

	if len(groups) == 0 {
		if pctx.Options == nil || pctx.Options.Verbose {
			return []dp.Issue{InfoIssue(dp.IssueTypeInformational,
				"no private attributes found; clean for sharing", "", p.Name())}
		}
		return nil
	}

	numbers := make([]uint16, 0, len(groups))
	for n := range groups {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	var issues []dp.Issue
	for _, n := range numbers {
		g := groups[n]
		switch {
		case g.elements > 0 && !g.hasCreator:
			issues = append(issues, ErrorIssue(dp.IssueTypeStructure,
				fmt.Sprintf("private group %04x has %d element(s) but no owning creator entry; structure may be corrupt", n, g.elements),
				g.firstPath, p.Name()))
		case g.elements > 0:
			issues = append(issues, WarningIssue(dp.IssueTypeStructure,
				fmt.Sprintf("%d private attribute(s) found in group %04x; ideally absent for broad interoperability", g.elements, n),
				g.firstPath, p.Name()))
		default:
			// A creator with no data elements is pointless but harmless
			issues = append(issues, WarningIssue(dp.IssueTypeStructure,
				fmt.Sprintf("private group %04x declares a creator but carries no elements", n),
				g.firstPath, p.Name()))
		}
	}
	return issues
}
