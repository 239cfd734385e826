package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	"github.com/draftday/draftroom/internal/infrastructure/repository/memory"
	"github.com/draftday/draftroom/internal/platform/logging"
)

type seqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("%s-%03d", g.prefix, g.next), nil
}

func fixedShuffle(ranks map[string]int) func([]string) []draft.RankAssignment {
	return func(userIDs []string) []draft.RankAssignment {
		out := make([]draft.RankAssignment, 0, len(userIDs))
		for _, id := range userIDs {
			out = append(out, draft.RankAssignment{UserID: id, Rank: ranks[id]})
		}
		return out
	}
}

type draftFixture struct {
	service    *DraftService
	leagueRepo *memory.LeagueRepository
	draftRepo  *memory.DraftRepository
	leagueID   string
}

func newDraftFixture(t *testing.T, capacity, totalRounds int, ranks map[string]int) draftFixture {
	t.Helper()

	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	l := league.League{
		ID:          "lg-test",
		Name:        "Test League",
		OwnerUserID: "user-a",
		Capacity:    capacity,
		TotalRounds: totalRounds,
		Status:      league.StatusDraftScheduled,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	users := []string{"user-a", "user-b", "user-c", "user-d", "user-e", "user-f"}[:capacity]
	members := make([]league.Member, 0, capacity)
	for i, u := range users {
		members = append(members, league.Member{
			LeagueID: l.ID,
			UserID:   u,
			JoinedAt: created.Add(time.Duration(i) * time.Minute),
		})
	}

	leagueRepo := memory.NewLeagueRepository([]league.League{l}, members)
	draftRepo := memory.NewDraftRepository(leagueRepo)

	service := NewDraftService(leagueRepo, draftRepo, &seqIDGenerator{prefix: "id"}, logging.NewNop())
	service.now = func() time.Time { return created.Add(time.Hour) }
	if ranks != nil {
		service.shuffle = fixedShuffle(ranks)
	}

	return draftFixture{
		service:    service,
		leagueRepo: leagueRepo,
		draftRepo:  draftRepo,
		leagueID:   l.ID,
	}
}

func TestDraftService_SnakeOrderFullDraft(t *testing.T) {
	ranks := map[string]int{"user-a": 2, "user-b": 4, "user-c": 1, "user-d": 3}
	fx := newDraftFixture(t, 4, 2, ranks)
	service, leagueRepo, leagueID := fx.service, fx.leagueRepo, fx.leagueID

	if _, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}

	wantOwners := []string{
		"user-c", "user-a", "user-d", "user-b",
		"user-b", "user-d", "user-a", "user-c",
	}

	for i, owner := range wantOwners {
		status, err := service.DraftStatus(t.Context(), leagueID)
		if err != nil {
			t.Fatalf("draft status at pick %d failed: %v", i+1, err)
		}
		if status.WhoseTurnUserID == nil || *status.WhoseTurnUserID != owner {
			t.Fatalf("pick %d: expected turn owner %s, got %v", i+1, owner, status.WhoseTurnUserID)
		}

		result, err := service.SubmitPick(t.Context(), SubmitPickInput{
			LeagueID:         leagueID,
			RequestingUserID: owner,
			PlayerID:         int64(100 + i),
		})
		if err != nil {
			t.Fatalf("pick %d by %s failed: %v", i+1, owner, err)
		}
		if result.PickNumber != i+1 {
			t.Fatalf("pick %d: expected pick number %d, got %d", i+1, i+1, result.PickNumber)
		}
		wantRound := i/4 + 1
		if result.Round != wantRound {
			t.Fatalf("pick %d: expected round %d, got %d", i+1, wantRound, result.Round)
		}
		if result.DraftComplete != (i == len(wantOwners)-1) {
			t.Fatalf("pick %d: unexpected complete=%v", i+1, result.DraftComplete)
		}
	}

	status, err := service.DraftStatus(t.Context(), leagueID)
	if err != nil {
		t.Fatalf("final draft status failed: %v", err)
	}
	if status.DraftStatus != string(draft.StatusCompleted) {
		t.Fatalf("expected completed draft, got %s", status.DraftStatus)
	}
	if status.WhoseTurnUserID != nil {
		t.Fatalf("expected no turn owner after completion, got %s", *status.WhoseTurnUserID)
	}
	if status.TotalPicksMade != 8 {
		t.Fatalf("expected 8 picks made, got %d", status.TotalPicksMade)
	}

	l, _, err := leagueRepo.GetByID(t.Context(), leagueID)
	if err != nil {
		t.Fatalf("get league failed: %v", err)
	}
	if l.Status != league.StatusActive {
		t.Fatalf("expected league active after draft, got %s", l.Status)
	}

	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-c",
		PlayerID:         999,
	}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state after completion, got %v", err)
	}
}

func TestDraftService_StartDraft_Authorization(t *testing.T) {
	fx := newDraftFixture(t, 4, 2, nil)
	service, leagueID := fx.service, fx.leagueID

	if _, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-b"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if _, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: "missing", RequestingUserID: "user-a"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown league, got %v", err)
	}
}

func TestDraftService_StartDraft_Idempotent(t *testing.T) {
	ranks := map[string]int{"user-a": 1, "user-b": 2, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 2, ranks)
	service, leagueRepo, leagueID := fx.service, fx.leagueRepo, fx.leagueID

	first, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-a"})
	if err != nil {
		t.Fatalf("first start failed: %v", err)
	}

	// A retried start must not reshuffle or open a second draft.
	service.shuffle = fixedShuffle(map[string]int{"user-a": 4, "user-b": 3, "user-c": 2, "user-d": 1})
	second, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-a"})
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same draft id, got %s vs %s", second.ID, first.ID)
	}

	members, err := leagueRepo.ListMembers(t.Context(), leagueID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	for _, m := range members {
		if m.DraftRank == nil {
			t.Fatalf("member %s has no draft rank", m.UserID)
		}
		if *m.DraftRank != ranks[m.UserID] {
			t.Fatalf("member %s rank changed to %d, expected %d", m.UserID, *m.DraftRank, ranks[m.UserID])
		}
	}
}

func TestDraftService_SubmitPick_Rejections(t *testing.T) {
	ranks := map[string]int{"user-a": 1, "user-b": 2, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 2, ranks)
	service, leagueID := fx.service, fx.leagueID

	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-a",
		PlayerID:         101,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found before draft start, got %v", err)
	}

	if _, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}

	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-b",
		PlayerID:         101,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden out of turn, got %v", err)
	}

	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-a",
		PlayerID:         0,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for player id 0, got %v", err)
	}

	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-a",
		PlayerID:         101,
	}); err != nil {
		t.Fatalf("first pick failed: %v", err)
	}

	// Player 101 is on user-a's roster now; nobody may pick them again.
	if _, err := service.SubmitPick(t.Context(), SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: "user-b",
		PlayerID:         101,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for duplicate player, got %v", err)
	}

	status, err := service.DraftStatus(t.Context(), leagueID)
	if err != nil {
		t.Fatalf("draft status failed: %v", err)
	}
	if status.TotalPicksMade != 1 {
		t.Fatalf("rejections must not advance the draft, got %d picks", status.TotalPicksMade)
	}
}

func TestDraftService_SubmitPick_ConcurrentSingleWinner(t *testing.T) {
	ranks := map[string]int{"user-a": 1, "user-b": 2, "user-c": 3, "user-d": 4}
	fx := newDraftFixture(t, 4, 2, ranks)
	service, leagueID := fx.service, fx.leagueID

	if _, err := service.StartDraft(t.Context(), StartDraftInput{LeagueID: leagueID, RequestingUserID: "user-a"}); err != nil {
		t.Fatalf("start draft failed: %v", err)
	}

	const attempts = 16
	results := make([]error, attempts)

	var wg conc.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Go(func() {
			_, err := service.SubmitPick(t.Context(), SubmitPickInput{
				LeagueID:         leagueID,
				RequestingUserID: "user-a",
				PlayerID:         int64(200 + i),
			})
			results[i] = err
		})
	}
	wg.Wait()

	winners := 0
	for i, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrConflict), errors.Is(err, ErrForbidden):
			// Losers must get a definite rejection.
		default:
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one admitted pick, got %d", winners)
	}

	status, err := service.DraftStatus(t.Context(), leagueID)
	if err != nil {
		t.Fatalf("draft status failed: %v", err)
	}
	if status.TotalPicksMade != 1 {
		t.Fatalf("expected exactly one pick recorded, got %d", status.TotalPicksMade)
	}
}
