package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/luminaretail/orders-backend/pkg/logger"
)

type fakeLock struct {
	held     bool
	denied   bool
	acquires int
	releases int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquires++
	if f.denied {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	f.releases++
	return nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func cronTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "worker-test", Output: io.Discard})
}

func TestRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	healthy := &testJob{name: "healthy"}
	broken := &testJob{name: "broken", err: errors.New("boom")}
	lock := &fakeLock{}

	service, err := NewService(ServiceParams{
		Logger:   cronTestLogger(),
		Registry: NewRegistry(healthy, broken),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}

	if healthy.runs != 1 {
		t.Errorf("healthy job ran %d times", healthy.runs)
	}
	if broken.runs != 1 {
		t.Errorf("broken job ran %d times", broken.runs)
	}
	if lock.releases != 1 {
		t.Errorf("lock released %d times", lock.releases)
	}
}

func TestRunCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &testJob{name: "sync"}
	lock := &fakeLock{denied: true}

	service, err := NewService(ServiceParams{
		Logger:   cronTestLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("run cycle: %v", err)
	}
	if job.runs != 0 {
		t.Errorf("job must not run without the lock, ran %d times", job.runs)
	}
	if lock.releases != 0 {
		t.Errorf("nothing to release, released %d times", lock.releases)
	}
}

func TestNewServiceRequiresLock(t *testing.T) {
	_, err := NewService(ServiceParams{Logger: cronTestLogger()})
	if err == nil {
		t.Fatal("expected error without lock")
	}
}
