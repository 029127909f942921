package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	perr "introspect/internal/platform/errors"
	"introspect/internal/services/pipeline/domain"
)

type blockingRunner struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error
	req     domain.RunRequest
}

func newRunner() *blockingRunner {
	return &blockingRunner{started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (b *blockingRunner) Run(_ context.Context, req domain.RunRequest) (domain.RunSummary, error) {
	b.calls.Add(1)
	b.req = req
	b.started <- struct{}{}
	<-b.release
	return domain.RunSummary{RunID: "r", Processed: 2}, b.err
}

func TestNew_BadSpec(t *testing.T) {
	_, err := New(newRunner(), Options{Spec: "every tuesday"})
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("New err = %v, want config error", err)
	}
}

func TestJob_SkipsWhileRunning(t *testing.T) {
	r := newRunner()
	s, err := New(r, Options{Spec: "@hourly", Request: domain.RunRequest{LookbackDays: 3}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan struct{})
	go func() { s.job.Run(); close(done) }()
	<-r.started

	s.job.Run()
	if n := r.calls.Load(); n != 1 {
		t.Fatalf("overlapping tick ran the pipeline, calls=%d", n)
	}

	close(r.release)
	<-done
	sum, err := s.Last()
	if err != nil || sum == nil || sum.Processed != 2 || r.req.LookbackDays != 3 {
		t.Fatalf("Last = %+v, %v (req %+v)", sum, err, r.req)
	}
}

func TestStart_RunOnStart(t *testing.T) {
	r := newRunner()
	r.err = errors.New("gong down")
	close(r.release)
	s, err := New(r, Options{Spec: "@daily", RunOnStart: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start(context.Background())
	select {
	case <-r.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("run on start never ran")
	}
	<-s.Stop().Done()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := s.Last(); err != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Last error never recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTick_CancelledContext(t *testing.T) {
	r := newRunner()
	s, _ := New(r, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ctx = ctx
	s.tick()
	if r.calls.Load() != 0 {
		t.Fatalf("tick ran after cancellation")
	}
}
