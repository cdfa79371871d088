package watch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"crescendo/internal/testsupport"
)

func newTestWatcher(t *testing.T, handler Handler) *Watcher {
	t.Helper()
	w, err := New(t.TempDir(), 50*time.Millisecond, nil, handler)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", time.Second, nil, func(context.Context, string) {}); err == nil {
		t.Error("expected error for empty dir")
	}
	if _, err := New(t.TempDir(), time.Second, nil, nil); err == nil {
		t.Error("expected error for nil handler")
	}
}

func TestReleaseRootMapsNestedPaths(t *testing.T) {
	w := newTestWatcher(t, func(context.Context, string) {})

	nested := filepath.Join(w.dir, "Artist - Album (2020)", "01 Track.flac")
	want := filepath.Join(w.dir, "Artist - Album (2020)")
	if got := w.releaseRoot(nested); got != want {
		t.Errorf("releaseRoot(%q) = %q, want %q", nested, got, want)
	}
	if got := w.releaseRoot(filepath.Join(w.dir, ".partial", "x")); got != "" {
		t.Errorf("hidden entry should be ignored, got %q", got)
	}
	if got := w.releaseRoot(filepath.Join(w.dir, "..", "outside")); got != "" {
		t.Errorf("path outside watch dir should be ignored, got %q", got)
	}
}

func TestTakeSettledHonorsWindow(t *testing.T) {
	w := newTestWatcher(t, func(context.Context, string) {})
	release := testsupport.WriteRelease(t, w.dir, "release", "01 Track.flac")

	now := time.Now()
	w.pending[release] = now

	if settled := w.takeSettled(now); len(settled) != 0 {
		t.Fatalf("fresh entry should not settle, got %v", settled)
	}
	settled := w.takeSettled(now.Add(time.Second))
	if len(settled) != 1 || settled[0] != release {
		t.Fatalf("takeSettled = %v, want [%s]", settled, release)
	}
	if _, ok := w.pending[release]; ok {
		t.Error("settled entry should be removed from pending")
	}
}

func TestTakeSettledDropsVanishedPaths(t *testing.T) {
	w := newTestWatcher(t, func(context.Context, string) {})
	gone := filepath.Join(w.dir, "deleted-release")
	w.pending[gone] = time.Now().Add(-time.Minute)

	if settled := w.takeSettled(time.Now()); len(settled) != 0 {
		t.Fatalf("vanished path should not settle, got %v", settled)
	}
}

func TestObserveRefreshesDeadline(t *testing.T) {
	w := newTestWatcher(t, func(context.Context, string) {})
	release := filepath.Join(w.dir, "release")
	w.pending[release] = time.Now().Add(-time.Minute)

	w.observe(fsnotify.Event{Name: filepath.Join(release, "02 Track.flac"), Op: fsnotify.Create})
	if settled := w.takeSettled(time.Now()); len(settled) != 0 {
		t.Fatalf("refreshed entry should not settle, got %v", settled)
	}

	w.observe(fsnotify.Event{Name: release, Op: fsnotify.Remove})
	if _, ok := w.pending[release]; ok {
		t.Error("removed release should be dropped from pending")
	}
}

func TestRunDispatchesSettledRelease(t *testing.T) {
	got := make(chan string, 1)
	w := newTestWatcher(t, func(_ context.Context, path string) {
		select {
		case got <- path:
		default:
		}
	})

	release := testsupport.WriteRelease(t, w.dir, "Artist - Album (2020)", "01 Track.flac", "02 Track.flac")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	select {
	case path := <-got:
		if path != release {
			t.Errorf("handler got %q, want %q", path, release)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settled release")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}
