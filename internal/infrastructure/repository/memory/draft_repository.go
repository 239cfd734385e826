package memory

import (
	"context"
	"sync"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
)

// DraftRepository keeps drafts and picks under one mutex so that RecordPick
// gives the same single-winner guarantee the SQL store gets from its
// version-guarded UPDATE.
type DraftRepository struct {
	mu           sync.RWMutex
	byLeague     map[string]draft.Draft
	picks        map[string][]draft.RosterPick
	takenPlayers map[string]map[int64]struct{}

	leagues *LeagueRepository
}

func NewDraftRepository(leagues *LeagueRepository) *DraftRepository {
	return &DraftRepository{
		byLeague:     make(map[string]draft.Draft),
		picks:        make(map[string][]draft.RosterPick),
		takenPlayers: make(map[string]map[int64]struct{}),
		leagues:      leagues,
	}
}

func (r *DraftRepository) StartDraft(_ context.Context, ranks []draft.RankAssignment, d draft.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLeague[d.LeagueID]; ok {
		return draft.ErrDraftExists
	}

	byUser := make(map[string]int, len(ranks))
	for _, ra := range ranks {
		byUser[ra.UserID] = ra.Rank
	}
	r.leagues.assignRanks(d.LeagueID, byUser)
	if err := r.leagues.UpdateStatus(context.Background(), d.LeagueID, league.StatusDraftScheduled, league.StatusDraftInProgress); err != nil {
		_ = r.leagues.UpdateStatus(context.Background(), d.LeagueID, league.StatusOpen, league.StatusDraftInProgress)
	}

	r.byLeague[d.LeagueID] = d
	r.takenPlayers[d.LeagueID] = make(map[int64]struct{})
	return nil
}

func (r *DraftRepository) GetByLeague(_ context.Context, leagueID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byLeague[leagueID]
	if !ok {
		return draft.Draft{}, false, nil
	}

	return d, true, nil
}

func (r *DraftRepository) ListInProgress(_ context.Context) ([]draft.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draft.Draft, 0, len(r.byLeague))
	for _, d := range r.byLeague {
		if d.Status == draft.StatusInProgress {
			out = append(out, d)
		}
	}

	return out, nil
}

func (r *DraftRepository) ListPicks(_ context.Context, leagueID string) ([]draft.RosterPick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.picks[leagueID]
	out := make([]draft.RosterPick, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *DraftRepository) IsPlayerTaken(_ context.Context, leagueID string, playerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, taken := r.takenPlayers[leagueID][playerID]
	return taken, nil
}

func (r *DraftRepository) RecordPick(_ context.Context, rec draft.PickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	leagueID := rec.Pick.LeagueID
	d, ok := r.byLeague[leagueID]
	if !ok || d.TotalPicksMade != rec.ExpectedTotalPicks {
		return draft.ErrStaleDraft
	}
	if _, taken := r.takenPlayers[leagueID][rec.Pick.PlayerID]; taken {
		return draft.ErrPlayerTaken
	}

	d.Round = rec.NextRound
	d.PickIndex = rec.NextPickIndex
	d.TotalPicksMade = rec.NextTotalPicks
	d.UpdatedAt = rec.Pick.CreatedAt
	if rec.Complete {
		d.Status = draft.StatusCompleted
		completedAt := rec.CompletedAt
		d.CompletedAt = &completedAt
	}

	r.byLeague[leagueID] = d
	r.picks[leagueID] = append(r.picks[leagueID], rec.Pick)
	r.takenPlayers[leagueID][rec.Pick.PlayerID] = struct{}{}

	if rec.Complete {
		_ = r.leagues.UpdateStatus(context.Background(), leagueID, league.StatusDraftInProgress, league.StatusActive)
	}

	return nil
}
