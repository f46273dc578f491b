package importer

import (
	"testing"
	"time"

	"github.com/maintdesk/workorder-service/internal/model"
)

func wo(id, externalID, title string) model.WorkOrder {
	return model.WorkOrder{ID: id, ExternalID: externalID, Title: title, Status: model.StatusOpen, Priority: model.PriorityLow}
}

func TestReplaceDropsEverythingNotInBatch(t *testing.T) {
	existing := []model.WorkOrder{wo("a", "WT-1", "old"), wo("b", "WT-2", "gone")}
	batch := []model.WorkOrder{wo("c", "WT-1", "new")}

	out := Replace(existing, batch)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].ID != "c" || out[0].Title != "new" {
		t.Errorf("got %+v", out[0])
	}
}

func TestMergeKeepsUserFields(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prev := wo("a", "WT-100", "Replace pump seal")
	prev.Status = model.StatusInProgress
	prev.Notes = "ordered part"
	prev.CreatedAt = created

	incoming := wo("fresh-uuid", "WT-100", "Replace pump seal")
	incoming.TrackingStatus = strp("Scheduled")
	incoming.Status = MapStatusFromTracking(incoming.TrackingStatus)

	out := Merge([]model.WorkOrder{prev}, []model.WorkOrder{incoming}, testNow)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	got := out[0]
	if got.ID != "a" {
		t.Errorf("ID = %q, want the existing one", got.ID)
	}
	if got.Notes != "ordered part" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if got.Status != model.StatusInProgress {
		t.Errorf("Status = %v, want the manually set one", got.Status)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Errorf("UpdatedAt = %v, want reconcile time", got.UpdatedAt)
	}
	if got.TrackingStatus == nil || *got.TrackingStatus != "Scheduled" {
		t.Errorf("TrackingStatus = %v, want refreshed from import", got.TrackingStatus)
	}
}

func TestMergeNeverDeletes(t *testing.T) {
	existing := []model.WorkOrder{wo("a", "WT-1", "kept"), wo("b", "WT-2", "also kept")}
	batch := []model.WorkOrder{wo("c", "WT-3", "brand new")}

	out := Merge(existing, batch, testNow)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	ids := map[string]bool{}
	for _, w := range out {
		ids[w.ID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !ids[id] {
			t.Errorf("record %q missing after merge", id)
		}
	}
}

func TestMergeDuplicateKeyLastWins(t *testing.T) {
	existing := []model.WorkOrder{wo("a", "WT-1", "old")}
	batch := []model.WorkOrder{
		wo("x", "WT-1", "first occurrence"),
		wo("y", "WT-1", "last occurrence"),
	}

	out := Merge(existing, batch, testNow)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].ID != "a" || out[0].Title != "last occurrence" {
		t.Errorf("got %+v", out[0])
	}
}

// Записи без WT-ID сверяются по внутреннему ID и не склеиваются между собой.
func TestMergeWithoutExternalIDUsesInternalID(t *testing.T) {
	existing := []model.WorkOrder{wo("a", "", "manual entry")}
	batch := []model.WorkOrder{wo("b", "", "imported noise survivor")}

	out := Merge(existing, batch, testNow)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
}
