package pipeline

import (
	"testing"
	"time"
)

func TestJobStoreCleanup(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)

	old := &Job{ID: "old", UpdatedAt: time.Now().Add(-time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(old)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expired job survived cleanup")
	}
	if store.Get("fresh") == nil {
		t.Error("fresh job evicted")
	}
}

func TestJobSnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("snapshot errors = nil, want empty slice")
	}
}

func TestJobAddErrorAccumulates(t *testing.T) {
	job := &Job{ID: "j1"}
	job.AddError("first")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("got %d errors, want 2", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "first" || snap.Progress.Errors[1] != "second" {
		t.Errorf("errors = %v", snap.Progress.Errors)
	}
}

func TestJobSetCountsKeepsExisting(t *testing.T) {
	job := &Job{ID: "j1"}
	job.SetCounts(5, 40, 0)
	job.SetCounts(0, 0, 30)

	snap := job.Snapshot()
	if snap.Progress.Pages != 5 || snap.Progress.Blocks != 40 || snap.Progress.IndexedBlocks != 30 {
		t.Errorf("progress = %+v", snap.Progress)
	}
}

func TestContentHashHex(t *testing.T) {
	a := ContentHashHex([]byte("same bytes"))
	b := ContentHashHex([]byte("same bytes"))
	c := ContentHashHex([]byte("different"))

	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
	if a != b {
		t.Error("hash not deterministic")
	}
	if a == c {
		t.Error("distinct inputs collided")
	}
}
