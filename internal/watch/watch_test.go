package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
)

type solveEvent struct {
	res     *config.Resolved
	results []beam.Result
	err     error
}

func startWatcher(t *testing.T, path string) (<-chan solveEvent, context.CancelFunc, <-chan error) {
	t.Helper()
	w := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	events := make(chan solveEvent, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, path, func(res *config.Resolved, results []beam.Result, err error) {
			events <- solveEvent{res, results, err}
		})
	}()
	t.Cleanup(cancel)
	return events, cancel, done
}

func next(t *testing.T, events <-chan solveEvent) solveEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for solve")
	}
	return solveEvent{}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_SolvesOnStartAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")
	writeConfig(t, path, "name: strip\nmodels: [linear]\nloads:\n  p: 1\n")

	events, _, _ := startWatcher(t, path)

	first := next(t, events)
	if first.err != nil {
		t.Fatalf("initial solve: %v", first.err)
	}
	if first.res.Name != "strip" || len(first.results) != 1 {
		t.Fatalf("unexpected initial solve: %+v", first)
	}
	tip := first.results[0].TipY

	// give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, path, "name: strip\nmodels: [linear]\nloads:\n  p: 2\n")

	second := next(t, events)
	if second.err != nil {
		t.Fatalf("re-solve: %v", second.err)
	}
	if got := second.results[0].TipY; got <= tip {
		t.Errorf("tip after doubling P = %v, want more than %v", got, tip)
	}
}

func TestWatcher_ReportsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")
	writeConfig(t, path, "beam:\n  length: -1\n")

	events, _, _ := startWatcher(t, path)
	if ev := next(t, events); ev.err == nil {
		t.Error("expected an error for a negative length")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beam.yaml")
	writeConfig(t, path, "models: [prb3r]\n")

	events, _, _ := startWatcher(t, path)
	next(t, events)

	time.Sleep(100 * time.Millisecond)
	writeConfig(t, filepath.Join(dir, "notes.txt"), "hello")

	select {
	case ev := <-events:
		t.Errorf("unexpected solve: %+v", ev)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")
	writeConfig(t, path, "models: [linear]\n")

	events, cancel, done := startWatcher(t, path)
	next(t, events)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(nil)
	err := w.Run(context.Background(), filepath.Join(t.TempDir(), "nope", "beam.yaml"), func(*config.Resolved, []beam.Result, error) {})
	if err == nil {
		t.Error("expected an error for a missing directory")
	}
}
