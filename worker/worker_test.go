package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsJobsInOrder(t *testing.T) {
	p := New(1, 8)
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		p.Submit(func() { order = append(order, i) })
	}
	p.Close()

	for i, v := range order {
		if v != i {
			t.Fatalf("expected jobs in submission order, got %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("expected 5 jobs to run, got %d", len(order))
	}
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := New(1, 2)
	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Close()

	if !ran.Load() {
		t.Fatalf("expected the worker to keep running after a panic")
	}
}

func TestTrySubmitFullQueue(t *testing.T) {
	p := New(1, 1)
	block := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func() {
		close(started)
		<-block
	})
	<-started

	if !p.TrySubmit(func() {}) {
		t.Fatalf("expected room for one queued job")
	}
	if p.TrySubmit(func() {}) {
		t.Fatalf("expected a full queue to reject the job")
	}
	close(block)
	p.Close()
}
