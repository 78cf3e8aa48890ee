package pipeline

import (
	"context"
	"testing"

	dp "github.com/nhermab/DICOMPolice-sub004"
)

func issuePhase(name string, issues ...dp.Issue) Phase {
	return NewPhaseFunc(name, func(ctx context.Context, pctx *Context) []dp.Issue {
		return issues
	})
}

func errorIssue(msg string) dp.Issue {
	return dp.Error(dp.IssueTypeValue).Diagnostics(msg).Build()
}

func infoIssue(msg string) dp.Issue {
	return dp.Info(dp.IssueTypeInformational).Diagnostics(msg).Build()
}

func TestPipeline_ExecutesInPriorityOrder(t *testing.T) {
	p := New(nil)
	p.Register("late", issuePhase("late", infoIssue("late")), WithPriority(PriorityLate))
	p.Register("first", issuePhase("first", infoIssue("first")), WithPriority(PriorityFirst))
	p.Register("normal", issuePhase("normal", infoIssue("normal")), WithPriority(PriorityNormal))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	if len(result.Issues) != 3 {
		t.Fatalf("len(Issues) = %d; want 3", len(result.Issues))
	}
	for i, want := range []string{"first", "normal", "late"} {
		if result.Issues[i].Diagnostics != want {
			t.Errorf("issue %d = %q; want %q", i, result.Issues[i].Diagnostics, want)
		}
	}
}

func TestPipeline_RegistrationOrderBreaksTies(t *testing.T) {
	p := New(nil)
	p.Register("b", issuePhase("b", infoIssue("b")), WithPriority(PriorityNormal))
	p.Register("a", issuePhase("a", infoIssue("a")), WithPriority(PriorityNormal))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	if len(result.Issues) != 2 || result.Issues[0].Diagnostics != "b" || result.Issues[1].Diagnostics != "a" {
		t.Errorf("issues out of registration order: %v", result.Issues)
	}
}

func TestPipeline_MaxErrors(t *testing.T) {
	p := New(&Options{MaxErrors: 1})
	p.Register("first", issuePhase("first", errorIssue("stop here")), WithPriority(PriorityFirst))
	p.Register("late", issuePhase("late", errorIssue("never runs")), WithPriority(PriorityLate))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	if result.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d; want 1 (later group skipped)", result.ErrorCount())
	}
}

func TestPipeline_FailFast(t *testing.T) {
	p := New(&Options{FailFast: true})
	p.Register("a", issuePhase("a", errorIssue("boom")), WithPriority(PriorityFirst))
	p.Register("b", issuePhase("b", infoIssue("skipped")), WithPriority(PriorityLate))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	if len(result.Issues) != 1 {
		t.Errorf("len(Issues) = %d; want 1", len(result.Issues))
	}
}

func TestPipeline_Cancellation(t *testing.T) {
	p := New(nil)
	p.Register("a", issuePhase("a", infoIssue("never")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(ctx, pctx)

	if len(result.Issues) != 1 {
		t.Fatalf("len(Issues) = %d; want 1 cancellation notice", len(result.Issues))
	}
	issue := result.Issues[0]
	if issue.Severity != dp.SeverityWarning || issue.Code != dp.IssueTypeProcessing {
		t.Errorf("cancellation issue = %v", issue)
	}
}

func TestPipeline_Disable(t *testing.T) {
	p := New(nil)
	p.Register("a", issuePhase("a", infoIssue("a")))
	p.Register("b", issuePhase("b", infoIssue("b")))
	p.Disable("a")

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	if len(result.Issues) != 1 || result.Issues[0].Diagnostics != "b" {
		t.Errorf("issues = %v; want only b", result.Issues)
	}

	p.Enable("a")
	if p.PhaseCount() != 2 {
		t.Errorf("PhaseCount() = %d; want 2 after re-enable", p.PhaseCount())
	}
}

func TestPipeline_RequiredCannotBeDisabled(t *testing.T) {
	p := New(nil)
	p.Register("a", issuePhase("a", infoIssue("a")), WithRequired(true))
	p.Disable("a")

	if p.PhaseCount() != 1 {
		t.Errorf("PhaseCount() = %d; required check was disabled", p.PhaseCount())
	}
}

func TestPipeline_ParallelCollectsAllIssues(t *testing.T) {
	p := New(&Options{ParallelExecution: true})
	p.Register("a", issuePhase("a", infoIssue("a")), WithParallel(true))
	p.Register("b", issuePhase("b", infoIssue("b")), WithParallel(true))
	p.Register("c", issuePhase("c", errorIssue("c")), WithParallel(true))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	result := p.Execute(context.Background(), pctx)

	// Order is completion order; the set must be complete
	if len(result.Issues) != 3 {
		t.Errorf("len(Issues) = %d; want 3", len(result.Issues))
	}
	if result.Valid {
		t.Error("error from a parallel check must invalidate the result")
	}
}

func TestPipeline_GroupCount(t *testing.T) {
	p := New(nil)
	p.Register("a", issuePhase("a"), WithPriority(PriorityFirst))
	p.Register("b", issuePhase("b"), WithPriority(PriorityFirst))
	p.Register("c", issuePhase("c"), WithPriority(PriorityLate))

	if p.GroupCount() != 2 {
		t.Errorf("GroupCount() = %d; want 2", p.GroupCount())
	}
}

func TestPipeline_MetricsRecorded(t *testing.T) {
	p := New(&Options{CollectMetrics: true})
	p.Register("a", issuePhase("a", infoIssue("a")))

	pctx := NewContext()
	pctx.Result = dp.NewResult()
	p.Execute(context.Background(), pctx)

	snaps := p.Metrics().CheckSnapshots()
	if len(snaps) != 1 || snaps[0].Name != "a" || snaps[0].Invocations != 1 {
		t.Errorf("check snapshots = %v", snaps)
	}
	if p.Metrics().ValidationsTotal() != 1 {
		t.Errorf("ValidationsTotal() = %d; want 1", p.Metrics().ValidationsTotal())
	}
}
