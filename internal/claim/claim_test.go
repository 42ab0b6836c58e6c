package claim

import (
	"testing"
	"time"

	"github.com/skovlund/choreboard/internal/model"
)

const created = "2024-06-05T08:00:00Z"

func fastestPair(tplID string) []model.Task {
	return []model.Task{
		{ID: "a", Title: "Empty dishwasher", Points: 10, AssignedTo: "anna",
			Status: model.StatusAssigned, Created: created,
			FastestWins: true, FastestWinsTemplateID: tplID},
		{ID: "b", Title: "Empty dishwasher", Points: 10, AssignedTo: "ben",
			Status: model.StatusAssigned, Created: created,
			FastestWins: true, FastestWinsTemplateID: tplID},
	}
}

func TestFirstClaimWins(t *testing.T) {
	tasks := fastestPair("tpl")
	res := Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)
	if !res.Won {
		t.Fatal("first claim should win")
	}
	if res.ClaimTS != 1000 {
		t.Errorf("claim ts = %d, want 1000", res.ClaimTS)
	}
	// Both copies carry the claim.
	for i := range tasks {
		if tasks[i].ClaimedBy != "anna" || tasks[i].ClaimedByName != "Anna" {
			t.Errorf("task %s claimant = %q/%q, want anna/Anna", tasks[i].ID, tasks[i].ClaimedBy, tasks[i].ClaimedByName)
		}
		if tasks[i].ClaimTS != 1000 {
			t.Errorf("task %s claim ts = %d, want 1000", tasks[i].ID, tasks[i].ClaimTS)
		}
	}
}

func TestSecondClaimLoses(t *testing.T) {
	tasks := fastestPair("tpl")
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)

	res := Resolve(tasks, 1, "ben", "Ben", 2000, time.UTC)
	if res.Won {
		t.Fatal("second claim should lose")
	}
	if res.ClaimedBy != "anna" {
		t.Errorf("loser sees claimant %q, want anna", res.ClaimedBy)
	}
	// The loser's copy is stamped with the winner, with the shared ts.
	if tasks[1].ClaimedBy != "anna" || tasks[1].ClaimTS != 1000 {
		t.Errorf("loser copy = %q@%d, want anna@1000", tasks[1].ClaimedBy, tasks[1].ClaimTS)
	}
}

func TestRepeatClaimIdempotent(t *testing.T) {
	tasks := fastestPair("tpl")
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)

	res := Resolve(tasks, 0, "anna", "Anna", 5000, time.UTC)
	if !res.Won {
		t.Fatal("winner repeating the claim should still win")
	}
	if res.ClaimTS != 1000 {
		t.Errorf("repeat claim ts = %d, want original 1000", res.ClaimTS)
	}
}

func TestSignatureFallbackGroupsLegacySiblings(t *testing.T) {
	tasks := fastestPair("")
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)
	if tasks[1].ClaimedBy != "anna" {
		t.Error("legacy siblings matched by title/points/due should share the claim")
	}
}

func TestDifferentSignatureNotGrouped(t *testing.T) {
	tasks := fastestPair("")
	tasks[1].Points = 20
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)
	if tasks[1].ClaimedBy != "" {
		t.Error("different points must not be grouped without a template link")
	}
}

func TestDifferentDayNotGrouped(t *testing.T) {
	tasks := fastestPair("tpl")
	tasks[1].Created = "2024-06-04T23:00:00Z"
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)
	if tasks[1].ClaimedBy != "" {
		t.Error("instances from different days must not be grouped")
	}
}

func TestStartedSiblingNotRestamped(t *testing.T) {
	tasks := fastestPair("tpl")
	tasks[1].Status = model.StatusInProgress
	Resolve(tasks, 0, "anna", "Anna", 1000, time.UTC)
	if tasks[1].ClaimedBy != "" {
		t.Error("only still-assigned siblings participate in the race")
	}
}
