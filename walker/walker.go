// Package walker implements the recursive template validation core:
// given a content item and a template, it checks the item's template
// identification, matches children against the template's rules, and
// recurses into nested containers with their bound sub-templates.
package walker

import (
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
	"github.com/nhermab/DICOMPolice-sub004/catalog"
	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// CheckName identifies the walker in issue output.
const CheckName = "template"

// Options configures a walk.
type Options struct {
	// TemplateIDMandatory escalates a missing template identification
	// at the root from a warning to an error.
	TemplateIDMandatory bool

	// RequiredConcepts lists concept codes the active profile upgrades
	// to mandatory even where the template says required-if-applicable.
	RequiredConcepts []dataset.ConceptCode

	// Verbose emits INFO issues for satisfied rules.
	Verbose bool
}

// Walk validates root and its descendants against tmpl, resolving
// nested templates through cat. The returned issues are in
// deterministic tree order.
func Walk(cat *catalog.Catalog, tmpl *catalog.Template, root *dataset.Item, opts Options) []dp.Issue {
	if tmpl == nil || root == nil {
		return nil
	}

	w := &walk{
		cat:     cat,
		opts:    opts,
		visited: make(map[*dataset.Item]struct{}),
	}
	w.checkTemplateID(root, tmpl, true)
	w.walkItem(root, tmpl)
	return w.issues
}

type walk struct {
	cat     *catalog.Catalog
	opts    Options
	visited map[*dataset.Item]struct{}
	issues  []dp.Issue
}

func (w *walk) add(issue dp.Issue) {
	w.issues = append(w.issues, issue)
}

// checkTemplateID validates an item's declared template identification
// against the template it is being validated with. At the root,
// absence is an error or a warning depending on profile strictness;
// nested containers rarely carry template identification, so absence
// there is silent and only a present-but-wrong declaration is flagged.
func (w *walk) checkTemplateID(item *dataset.Item, tmpl *catalog.Template, root bool) {
	path := item.Path
	if path == "" {
		path = "ContentTemplateSequence"
	} else {
		path = path + ".ContentTemplateSequence"
	}

	if item.TemplateID == "" && item.MappingResource == "" {
		if !root {
			return
		}
		diag := fmt.Sprintf("template identification missing; for compliance this should explicitly identify template %s of %s", tmpl.ID, tmpl.MappingResource)
		if w.opts.TemplateIDMandatory {
			w.add(dp.Error(dp.IssueTypeTemplate).Diagnostics(diag).At(path).Check(CheckName).Build())
		} else {
			w.add(dp.Warning(dp.IssueTypeTemplate).Diagnostics(diag).At(path).Check(CheckName).Build())
		}
		return
	}

	if item.TemplateID != tmpl.ID {
		w.add(dp.Warning(dp.IssueTypeTemplate).
			Diagnostics(fmt.Sprintf("content item identifies template %q; does not identify the expected template %q", item.TemplateID, tmpl.ID)).
			At(path).
			Check(CheckName).
			Build())
		return
	}

	if item.MappingResource != tmpl.MappingResource {
		w.add(dp.Error(dp.IssueTypeTemplate).
			Diagnostics(fmt.Sprintf("template identifier %q found but mapping resource mismatch; expected %q, found %q", tmpl.ID, tmpl.MappingResource, item.MappingResource)).
			At(path).
			Check(CheckName).
			Build())
		return
	}

	if w.opts.Verbose {
		w.add(dp.Info(dp.IssueTypeInformational).
			Diagnostics(fmt.Sprintf("correctly identifies template %s of %s (%s)", tmpl.ID, tmpl.MappingResource, tmpl.Name)).
			At(path).
			Check(CheckName).
			Build())
	}
}

// walkItem matches item's children against tmpl's rules and recurses.
func (w *walk) walkItem(item *dataset.Item, tmpl *catalog.Template) {
	if _, seen := w.visited[item]; seen {
		w.add(dp.Error(dp.IssueTypeStructure).
			Diagnostics("structural cycle detected in content tree; aborting this branch").
			At(item.Path).
			Check(CheckName).
			Build())
		return
	}
	w.visited[item] = struct{}{}

	for _, rule := range tmpl.Rules {
		w.applyRule(item, tmpl, rule)
	}

	// Extra children not named by the template are permitted: templates
	// are additive and extension content is allowed to pass untouched.
}

// applyRule searches item's children for one satisfying the rule
// identity and reports on presence, value type, and requirement level.
func (w *walk) applyRule(item *dataset.Item, tmpl *catalog.Template, rule catalog.Rule) {
	matched := false
	for _, child := range item.Children {
		if !rule.Matches(child) {
			continue
		}
		matched = true

		if child.ValueType != rule.ValueType {
			w.add(dp.Error(dp.IssueTypeValue).
				Diagnostics(fmt.Sprintf("expected value type %s but found %s for concept %s", rule.ValueType, child.ValueType, conceptLabel(rule, child))).
				At(child.Path).
				Check(CheckName).
				Build())
			// A wrongly typed container still gets its children checked
		} else if w.opts.Verbose {
			w.add(dp.Info(dp.IssueTypeInformational).
				Diagnostics(fmt.Sprintf("content item present as expected: %s", rule.Label())).
				At(child.Path).
				Check(CheckName).
				Build())
		}

		if rule.SubTemplate != "" {
			w.recurse(child, tmpl, rule)
		}
	}

	if matched {
		return
	}

	requirement := rule.Requirement
	if requirement == catalog.RequiredIfApplicable && w.upgraded(rule) {
		requirement = catalog.Required
	}

	switch requirement {
	case catalog.Required:
		w.add(dp.Error(dp.IssueTypeRequired).
			Diagnostics(fmt.Sprintf("required content item missing: %s", rule.Label())).
			At(item.Path).
			Check(CheckName).
			Build())
	case catalog.RequiredIfApplicable, catalog.Conditional:
		w.add(dp.Warning(dp.IssueTypeRequired).
			Diagnostics(fmt.Sprintf("conditionally required item missing; verify applicability: %s", rule.Label())).
			At(item.Path).
			Check(CheckName).
			Build())
	case catalog.Optional:
		// absence of optional content is not reportable
	}
}

// recurse descends into a container child with the rule's bound
// sub-template.
func (w *walk) recurse(child *dataset.Item, parent *catalog.Template, rule catalog.Rule) {
	sub, ok := w.cat.TemplateFor(parent.MappingResource, rule.SubTemplate)
	if !ok {
		w.add(dp.Warning(dp.IssueTypeTemplate).
			Diagnostics(fmt.Sprintf("no template definition for %s:%s; nested content not validated", parent.MappingResource, rule.SubTemplate)).
			At(child.Path).
			Check(CheckName).
			Build())
		return
	}
	w.checkTemplateID(child, sub, false)
	w.walkItem(child, sub)
}

// upgraded reports whether the active profile promotes the rule's
// concept to mandatory.
func (w *walk) upgraded(rule catalog.Rule) bool {
	if rule.Concept == nil {
		return false
	}
	for _, code := range w.opts.RequiredConcepts {
		if rule.Concept.Equal(code) {
			return true
		}
	}
	return false
}

func conceptLabel(rule catalog.Rule, child *dataset.Item) string {
	if child.ConceptName != nil {
		return child.ConceptName.String()
	}
	if rule.Concept != nil {
		return rule.Concept.String()
	}
	return "(unnamed)"
}
