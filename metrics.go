package dicompolice

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks validation performance metrics using lock-free atomic
// operations. All methods are safe for concurrent use.
type Metrics struct {
	// Validation counts
	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64

	// Timing (stored as nanoseconds)
	validationTimeTotal atomic.Uint64
	validationTimeMax   atomic.Uint64

	// Issue counts by severity
	errorsTotal   atomic.Uint64
	warningsTotal atomic.Uint64
	infosTotal    atomic.Uint64

	// Per-check timing
	checkTiming sync.Map // map[string]*checkMetrics
}

// checkMetrics tracks metrics for a single validation check.
type checkMetrics struct {
	invocations atomic.Uint64
	totalTime   atomic.Uint64 // nanoseconds
	issuesFound atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordValidation records a completed validation run.
func (m *Metrics) RecordValidation(duration time.Duration, valid bool) {
	m.validationsTotal.Add(1)
	if valid {
		m.validationsValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.validationTimeTotal.Add(ns)

	// Update max (CAS loop)
	for {
		old := m.validationTimeMax.Load()
		if ns <= old {
			break
		}
		if m.validationTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordIssue records an issue based on severity.
func (m *Metrics) RecordIssue(severity Severity) {
	switch severity {
	case SeverityError:
		m.errorsTotal.Add(1)
	case SeverityWarning:
		m.warningsTotal.Add(1)
	case SeverityInformation:
		m.infosTotal.Add(1)
	}
}

// RecordCheck records metrics for one validation check invocation.
func (m *Metrics) RecordCheck(name string, duration time.Duration, issuesFound int) {
	cm := m.getOrCreateCheckMetrics(name)
	cm.invocations.Add(1)
	cm.totalTime.Add(uint64(duration.Nanoseconds()))
	cm.issuesFound.Add(uint64(issuesFound))
}

func (m *Metrics) getOrCreateCheckMetrics(name string) *checkMetrics {
	if v, ok := m.checkTiming.Load(name); ok {
		return v.(*checkMetrics)
	}
	cm := &checkMetrics{}
	actual, _ := m.checkTiming.LoadOrStore(name, cm)
	return actual.(*checkMetrics)
}

// ValidationsTotal returns the total number of validations performed.
func (m *Metrics) ValidationsTotal() uint64 {
	return m.validationsTotal.Load()
}

// ValidationsValid returns the number of validations that produced a
// valid document.
func (m *Metrics) ValidationsValid() uint64 {
	return m.validationsValid.Load()
}

// ValidationRate returns the fraction of valid documents (0.0 to 1.0).
func (m *Metrics) ValidationRate() float64 {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return float64(m.validationsValid.Load()) / float64(total)
}

// AverageValidationTime returns the average validation duration.
func (m *Metrics) AverageValidationTime() time.Duration {
	total := m.validationsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.validationTimeTotal.Load() / total)
}

// MaxValidationTime returns the maximum validation duration.
func (m *Metrics) MaxValidationTime() time.Duration {
	return time.Duration(m.validationTimeMax.Load())
}

// ErrorsTotal returns the total number of error issues recorded.
func (m *Metrics) ErrorsTotal() uint64 {
	return m.errorsTotal.Load()
}

// WarningsTotal returns the total number of warning issues recorded.
func (m *Metrics) WarningsTotal() uint64 {
	return m.warningsTotal.Load()
}

// InfosTotal returns the total number of informational issues recorded.
func (m *Metrics) InfosTotal() uint64 {
	return m.infosTotal.Load()
}

// CheckSnapshot holds a point-in-time view of one check's metrics.
type CheckSnapshot struct {
	Name        string
	Invocations uint64
	TotalTime   time.Duration
	IssuesFound uint64
}

// CheckSnapshots returns per-check metrics for all checks seen so far.
func (m *Metrics) CheckSnapshots() []CheckSnapshot {
	var snaps []CheckSnapshot
	m.checkTiming.Range(func(key, value any) bool {
		cm := value.(*checkMetrics)
		snaps = append(snaps, CheckSnapshot{
			Name:        key.(string),
			Invocations: cm.invocations.Load(),
			TotalTime:   time.Duration(cm.totalTime.Load()),
			IssuesFound: cm.issuesFound.Load(),
		})
		return true
	})
	return snaps
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.validationsTotal.Store(0)
	m.validationsValid.Store(0)
	m.validationTimeTotal.Store(0)
	m.validationTimeMax.Store(0)
	m.errorsTotal.Store(0)
	m.warningsTotal.Store(0)
	m.infosTotal.Store(0)
	m.checkTiming.Range(func(key, _ any) bool {
		m.checkTiming.Delete(key)
		return true
	})
}
