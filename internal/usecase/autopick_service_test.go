package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/draftday/draftroom/internal/platform/logging"
)

type staticCatalog struct {
	ids []int64
}

func (c staticCatalog) ListPlayerIDs(_ context.Context) ([]int64, error) {
	return c.ids, nil
}

func TestAutopickService_Sweep(t *testing.T) {
	ranks := map[string]int{"user-a": 2, "user-b": 1, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 2, ranks)

	if _, err := fx.service.StartDraft(t.Context(), StartDraftInput{LeagueID: fx.leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}

	// First-ranked user-b drafts player 101 themselves; 101 must then be
	// unavailable to the autopicker.
	if _, err := fx.service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         fx.leagueID,
		RequestingUserID: "user-b",
		PlayerID:         101,
	}); err != nil {
		t.Fatalf("manual pick failed: %v", err)
	}

	catalog := staticCatalog{ids: []int64{101, 102, 103}}
	autopick := NewAutopickService(
		fx.service,
		fx.leagueRepo,
		fx.draftRepo,
		catalog,
		logging.NewNop(),
		time.Minute,
		time.Minute,
		2,
	)

	// The last write is at the fixture's frozen clock; an hour later the
	// draft counts as idle.
	lastWrite := fx.service.now()
	autopick.now = func() time.Time { return lastWrite.Add(time.Hour) }

	result, err := autopick.Sweep(t.Context())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.SweptDrafts != 1 || result.PickedCount != 1 {
		t.Fatalf("expected one idle draft picked, got %+v", result)
	}
	row := result.Drafts[0]
	if row.UserID != "user-a" {
		t.Fatalf("expected autopick for user-a, got %s", row.UserID)
	}
	if row.PlayerID != 102 {
		t.Fatalf("expected first available player 102, got %d", row.PlayerID)
	}

	status, err := fx.service.DraftStatus(t.Context(), fx.leagueID)
	if err != nil {
		t.Fatalf("draft status failed: %v", err)
	}
	if status.TotalPicksMade != 2 {
		t.Fatalf("expected 2 picks after sweep, got %d", status.TotalPicksMade)
	}

	// Inside the idle window nothing qualifies.
	autopick.now = func() time.Time { return lastWrite.Add(30 * time.Second) }
	result, err = autopick.Sweep(t.Context())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if result.SweptDrafts != 0 || result.PickedCount != 0 {
		t.Fatalf("expected no idle drafts, got %+v", result)
	}
}

func TestAutopickService_Sweep_ExhaustedCatalog(t *testing.T) {
	ranks := map[string]int{"user-a": 1, "user-b": 2, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 2, ranks)

	if _, err := fx.service.StartDraft(t.Context(), StartDraftInput{LeagueID: fx.leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}
	if _, err := fx.service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         fx.leagueID,
		RequestingUserID: "user-a",
		PlayerID:         101,
	}); err != nil {
		t.Fatalf("manual pick failed: %v", err)
	}

	autopick := NewAutopickService(
		fx.service,
		fx.leagueRepo,
		fx.draftRepo,
		staticCatalog{ids: []int64{101}},
		logging.NewNop(),
		time.Minute,
		time.Minute,
		2,
	)
	autopick.now = func() time.Time { return fx.service.now().Add(time.Hour) }

	result, err := autopick.Sweep(t.Context())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if result.FailedCount != 1 {
		t.Fatalf("expected one failed draft with exhausted catalog, got %+v", result)
	}
}
