// Package profiler records how long each stage of a run takes.
package profiler

import (
	"sync"
	"time"
)

// Stage is the recorded timing of one named operation.
type Stage struct {
	// Name identifies the operation (e.g. "decode", "interleave").
	Name string `json:"name"`
	// Duration is the wall-clock time the operation took.
	Duration time.Duration `json:"duration_ns"`
}

// StageTimer tracks operation timings in the order they complete.
//
// It is safe for concurrent use, although a combine run only ever drives it from
// one goroutine.
type StageTimer struct {
	mu     sync.Mutex
	start  time.Time
	stages []Stage
	now    func() time.Time
}

// NewStageTimer creates a timer whose total is measured from now.
func NewStageTimer() *StageTimer {
	return newStageTimer(time.Now)
}

func newStageTimer(now func() time.Time) *StageTimer {
	return &StageTimer{
		start:  now(),
		stages: make([]Stage, 0, 8),
		now:    now,
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
func (t *StageTimer) StartOperation(name string) func() {
	start := t.now()
	return func() {
		t.record(name, t.now().Sub(start))
	}
}

// record appends a completed operation.
func (t *StageTimer) record(name string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stages = append(t.stages, Stage{Name: name, Duration: duration})
}

// Stages returns a copy of the recorded operations in completion order.
func (t *StageTimer) Stages() []Stage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

// Elapsed returns the time since the timer was created.
func (t *StageTimer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}
