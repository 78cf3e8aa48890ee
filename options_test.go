package dicompolice

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	if !o.CheckContentType || !o.CheckTemplate || !o.CheckEmptySequences || !o.CheckPrivateAttrs {
		t.Error("all checks should be enabled by default")
	}
	if !o.Verbose {
		t.Error("verbose should be enabled by default")
	}
	if o.MaxErrors != 0 {
		t.Errorf("MaxErrors = %d; want 0 (unlimited)", o.MaxErrors)
	}
	if o.ParallelPhases {
		t.Error("phases should run sequentially by default")
	}
	if o.WorkerCount <= 0 {
		t.Errorf("WorkerCount = %d; want > 0", o.WorkerCount)
	}
	if !o.EnablePooling {
		t.Error("pooling should be enabled by default")
	}
}

func TestOptions(t *testing.T) {
	o := DefaultOptions()
	for _, opt := range []Option{
		WithContentTypeCheck(false),
		WithTemplateCheck(false),
		WithEmptySequenceCheck(false),
		WithPrivateAttributeCheck(false),
		WithVerbose(false),
		WithMaxErrors(5),
		WithParallelPhases(true),
		WithWorkerCount(8),
		WithPhaseTimeout(2 * time.Second),
		WithPooling(false),
		WithTemplateDir("/etc/dicompolice/templates"),
	} {
		opt(o)
	}

	if o.CheckContentType || o.CheckTemplate || o.CheckEmptySequences || o.CheckPrivateAttrs {
		t.Error("check toggles not applied")
	}
	if o.Verbose {
		t.Error("WithVerbose(false) not applied")
	}
	if o.MaxErrors != 5 {
		t.Errorf("MaxErrors = %d; want 5", o.MaxErrors)
	}
	if !o.ParallelPhases {
		t.Error("WithParallelPhases(true) not applied")
	}
	if o.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d; want 8", o.WorkerCount)
	}
	if o.PhaseTimeout != 2*time.Second {
		t.Errorf("PhaseTimeout = %v; want 2s", o.PhaseTimeout)
	}
	if o.EnablePooling {
		t.Error("WithPooling(false) not applied")
	}
	if o.TemplateDir != "/etc/dicompolice/templates" {
		t.Errorf("TemplateDir = %q", o.TemplateDir)
	}
}

func TestWithWorkerCount_IgnoresNonPositive(t *testing.T) {
	o := DefaultOptions()
	before := o.WorkerCount
	WithWorkerCount(0)(o)
	WithWorkerCount(-3)(o)
	if o.WorkerCount != before {
		t.Errorf("WorkerCount = %d; want unchanged %d", o.WorkerCount, before)
	}
}
