package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(msg string, fields ...interface{})             {}
func (l *recordingLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *recordingLogger) Debug(msg string, fields ...interface{})            {}
func (l *recordingLogger) Warn(msg string, fields ...interface{}) {
	l.warnings = append(l.warnings, msg)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestTracker_ExpectedPaths(t *testing.T) {
	tracker := NewTracker("/tmp", "png", nil)

	got := tracker.ExpectedPaths("abc123defg", 3)
	want := []string{"/tmp/abc123defg1.png", "/tmp/abc123defg2.png", "/tmp/abc123defg3.png"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpectedPaths = %v, want %v", got, want)
	}

	if again := tracker.ExpectedPaths("abc123defg", 3); !reflect.DeepEqual(again, got) {
		t.Fatalf("ExpectedPaths is not deterministic: %v vs %v", again, got)
	}
	if paths := tracker.ExpectedPaths("abc123defg", 0); paths != nil {
		t.Fatalf("expected no paths for zero pages, got %v", paths)
	}
}

func TestTracker_TemplateMatchesPaths(t *testing.T) {
	tracker := NewTracker("/var/tmp/render", ".png", nil)
	template := tracker.Template("base")

	for page := 1; page <= 12; page++ {
		if got, want := fmt.Sprintf(template, page), tracker.Path("base", page); got != want {
			t.Fatalf("template expands to %q, path is %q", got, want)
		}
	}
}

func TestNewTracker_Defaults(t *testing.T) {
	tracker := NewTracker("", "", nil)
	if tracker.Dir() != os.TempDir() {
		t.Fatalf("expected default dir %q, got %q", os.TempDir(), tracker.Dir())
	}
	if got := tracker.Path("x", 1); got != filepath.Join(os.TempDir(), "x1") {
		t.Fatalf("unexpected path without extension: %q", got)
	}
}

func TestTracker_VerifyAll(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTracker(dir, ".png", nil)
	paths := tracker.ExpectedPaths("doc", 3)

	touch(t, paths[0])
	touch(t, paths[1])
	if tracker.VerifyAll(paths) {
		t.Fatalf("expected verification to fail with a missing page")
	}

	touch(t, paths[2])
	if !tracker.VerifyAll(paths) {
		t.Fatalf("expected verification to pass once all pages exist")
	}

	if err := os.Remove(paths[1]); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if tracker.VerifyAll(paths) {
		t.Fatalf("expected verification to observe the removed page")
	}
	if !tracker.VerifyAll(nil) {
		t.Fatalf("expected empty set to verify")
	}
}

func TestTracker_DeleteAllBestEffort(t *testing.T) {
	dir := t.TempDir()
	logger := &recordingLogger{}
	tracker := NewTracker(dir, ".png", logger)
	paths := tracker.ExpectedPaths("doc", 4)

	touch(t, paths[0])
	// A non-empty directory cannot be removed with os.Remove.
	if err := os.Mkdir(paths[1], 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, filepath.Join(paths[1], "child"))
	touch(t, paths[3])

	removed := tracker.DeleteAll(paths)
	if removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	for _, p := range []string{paths[0], paths[2], paths[3]} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be gone", p)
		}
	}
	if len(logger.warnings) != 1 {
		t.Fatalf("expected one warning for the undeletable path, got %v", logger.warnings)
	}

	if removed := tracker.DeleteAll(paths[:1]); removed != 0 {
		t.Fatalf("expected idempotent delete, removed %d", removed)
	}
}

func TestSet_ReleasesEachPathOnce(t *testing.T) {
	dir := t.TempDir()
	tracker := NewTracker(dir, ".png", nil)
	set := &Set{}

	first := tracker.ExpectedPaths("a", 2)
	set.Add(first...)
	for _, p := range first {
		touch(t, p)
	}

	if removed := set.Release(tracker); removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}

	// Recreated files are not deleted a second time.
	touch(t, first[0])
	if removed := set.Release(tracker); removed != 0 {
		t.Fatalf("expected no removals on second release, got %d", removed)
	}
	if _, err := os.Stat(first[0]); err != nil {
		t.Fatalf("expected recreated file to survive: %v", err)
	}

	second := tracker.ExpectedPaths("b", 1)
	set.Add(second...)
	touch(t, second[0])
	if removed := set.Release(tracker); removed != 1 {
		t.Fatalf("expected newly added path to be released, got %d", removed)
	}
	if got := len(set.Paths()); got != 3 {
		t.Fatalf("expected 3 tracked paths, got %d", got)
	}
}
