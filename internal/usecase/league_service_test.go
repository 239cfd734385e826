package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/draftday/draftroom/internal/domain/league"
	"github.com/draftday/draftroom/internal/infrastructure/repository/memory"
	"github.com/draftday/draftroom/internal/platform/logging"
)

func newLeagueService(leagueRepo *memory.LeagueRepository, draftRepo *memory.DraftRepository) *LeagueService {
	service := NewLeagueService(leagueRepo, draftRepo, &seqIDGenerator{prefix: "lg"}, logging.NewNop(), 15)
	service.now = func() time.Time { return time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC) }
	return service
}

func TestLeagueService_CreateLeague(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(nil, nil)
	service := newLeagueService(leagueRepo, memory.NewDraftRepository(leagueRepo))

	created, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name:        "Midnight League",
		OwnerUserID: "user-owner",
		Capacity:    4,
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}
	if created.Status != league.StatusOpen {
		t.Fatalf("expected open status, got %s", created.Status)
	}
	if created.TotalRounds != 15 {
		t.Fatalf("expected default 15 rounds, got %d", created.TotalRounds)
	}

	members, err := leagueRepo.ListMembers(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 1 || members[0].UserID != "user-owner" {
		t.Fatalf("expected owner as sole member, got %+v", members)
	}

	if _, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name:        "Solo",
		OwnerUserID: "user-owner",
		Capacity:    1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for capacity 1, got %v", err)
	}
	if _, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name:     "Anonymous",
		Capacity: 4,
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized without owner, got %v", err)
	}
}

func TestLeagueService_JoinLeague_FillsAndSchedules(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(nil, nil)
	service := newLeagueService(leagueRepo, memory.NewDraftRepository(leagueRepo))

	created, err := service.CreateLeague(t.Context(), CreateLeagueInput{
		Name:        "Trio",
		OwnerUserID: "user-a",
		Capacity:    3,
	})
	if err != nil {
		t.Fatalf("create league failed: %v", err)
	}

	if _, err := service.JoinLeague(t.Context(), JoinLeagueInput{LeagueID: created.ID, UserID: "user-b"}); err != nil {
		t.Fatalf("join by user-b failed: %v", err)
	}
	if _, err := service.JoinLeague(t.Context(), JoinLeagueInput{LeagueID: created.ID, UserID: "user-b"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on double join, got %v", err)
	}

	joined, err := service.JoinLeague(t.Context(), JoinLeagueInput{LeagueID: created.ID, UserID: "user-c"})
	if err != nil {
		t.Fatalf("join by user-c failed: %v", err)
	}
	if joined.Status != league.StatusDraftScheduled {
		t.Fatalf("expected draft_scheduled after filling, got %s", joined.Status)
	}

	if _, err := service.JoinLeague(t.Context(), JoinLeagueInput{LeagueID: created.ID, UserID: "user-d"}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state joining a scheduled league, got %v", err)
	}
	if _, err := service.JoinLeague(t.Context(), JoinLeagueInput{LeagueID: "missing", UserID: "user-d"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeagueService_ListRoster(t *testing.T) {
	ranks := map[string]int{"user-a": 1, "user-b": 2, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 1, ranks)
	service := newLeagueService(fx.leagueRepo, fx.draftRepo)

	if _, err := service.ListRoster(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown league, got %v", err)
	}

	if _, err := fx.service.StartDraft(t.Context(), StartDraftInput{LeagueID: fx.leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}
	for i, user := range []string{"user-a", "user-b", "user-c", "user-d"} {
		if _, err := fx.service.SubmitPick(t.Context(), SubmitPickInput{
			LeagueID:         fx.leagueID,
			RequestingUserID: user,
			PlayerID:         int64(300 + i),
		}); err != nil {
			t.Fatalf("pick by %s failed: %v", user, err)
		}
	}

	picks, err := service.ListRoster(t.Context(), fx.leagueID)
	if err != nil {
		t.Fatalf("list roster failed: %v", err)
	}
	if len(picks) != 4 {
		t.Fatalf("expected 4 picks, got %d", len(picks))
	}
	for i, p := range picks {
		if p.OverallPick != i+1 {
			t.Fatalf("pick %d out of order: overall=%d", i, p.OverallPick)
		}
	}
}
