package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/neurocore/pkg/lifecycle"
)

func TestNew(t *testing.T) {
	lc := lifecycle.New()

	if lc.Context() == nil {
		t.Fatal("Context() returned nil")
	}

	if lc.Ready() {
		t.Error("Ready() = true, want false for new coordinator")
	}
}

func TestCoordinator_WaitForStartup_SetsReady(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	for range 3 {
		lc.OnStartup(func() error {
			count.Add(1)
			return nil
		})
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() failed: %v", err)
	}

	if count.Load() != 3 {
		t.Errorf("count = %d, want 3", count.Load())
	}

	if !lc.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestCoordinator_WaitForStartup_FailedHookNotReady(t *testing.T) {
	lc := lifecycle.New()
	errPing := errors.New("ping failed")

	lc.OnStartup(func() error { return nil })
	lc.OnStartup(func() error { return errPing })

	err := lc.WaitForStartup()
	if !errors.Is(err, errPing) {
		t.Errorf("WaitForStartup() = %v, want %v", err, errPing)
	}

	if lc.Ready() {
		t.Error("Ready() = true after a failed startup hook")
	}
}

func TestCoordinator_NotReadyWhileHookRuns(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnStartup(func() error {
		<-release
		return nil
	})

	if lc.Ready() {
		t.Error("Ready() = true before startup hooks finished")
	}

	close(release)
	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup() failed: %v", err)
	}

	if !lc.Ready() {
		t.Error("Ready() = false after startup hooks finished")
	}
}

func TestCoordinator_Shutdown(t *testing.T) {
	lc := lifecycle.New()

	var executed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		executed.Store(true)
	})

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if !executed.Load() {
		t.Error("shutdown function was not executed")
	}
}

func TestCoordinator_Shutdown_Timeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	defer close(release)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-release
	})

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("Shutdown() should fail when hooks exceed the timeout")
	}
}
