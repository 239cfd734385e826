package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	idgen "github.com/draftday/draftroom/internal/platform/id"
	"github.com/draftday/draftroom/internal/platform/logging"
)

// DraftStatusNotStarted is reported by DraftStatus before the league owner
// has started the draft.
const DraftStatusNotStarted = "not_started"

type StartDraftInput struct {
	LeagueID         string
	RequestingUserID string
}

type SubmitPickInput struct {
	LeagueID         string
	RequestingUserID string
	PlayerID         int64
}

type PickResult struct {
	PickNumber    int
	Round         int
	DraftComplete bool
}

type MemberSlot struct {
	UserID string
	Rank   int
}

type DraftStatus struct {
	DraftStatus        string
	Capacity           int
	TotalRounds        int
	CurrentRound       int
	CurrentPickIndex   int
	TotalPicksMade     int
	WhoseTurnUserID    *string
	RankOrderedMembers []MemberSlot
}

// DraftService is the draft coordinator: it assigns the randomized pick
// order, admits pick submissions, and projects draft status. It holds no
// state of its own; any number of replicas coordinate purely through the
// draft repository's conditional writes.
type DraftService struct {
	leagueRepo league.Repository
	draftRepo  draft.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
	shuffle    func(userIDs []string) []draft.RankAssignment
}

func NewDraftService(
	leagueRepo league.Repository,
	draftRepo draft.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		leagueRepo: leagueRepo,
		draftRepo:  draftRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		shuffle:    draft.ShuffleRanks,
	}
}

// StartDraft shuffles member ranks and opens the draft. Only the league
// owner may call it; retried requests are tolerated by returning the
// existing draft unchanged instead of reshuffling.
func (s *DraftService) StartDraft(ctx context.Context, input StartDraftInput) (draft.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.StartDraft")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.RequestingUserID = strings.TrimSpace(input.RequestingUserID)
	if input.LeagueID == "" {
		return draft.Draft{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.RequestingUserID == "" {
		return draft.Draft{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("get league for draft start: %w", err)
	}
	if !exists {
		return draft.Draft{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}
	if l.OwnerUserID != input.RequestingUserID {
		return draft.Draft{}, fmt.Errorf("%w: only the league owner may start the draft", ErrForbidden)
	}

	if existing, ok, err := s.draftRepo.GetByLeague(ctx, input.LeagueID); err != nil {
		return draft.Draft{}, fmt.Errorf("check existing draft: %w", err)
	} else if ok {
		return existing, nil
	}

	if !l.Startable() {
		return draft.Draft{}, fmt.Errorf("%w: league status is %s", ErrPreconditionFailed, l.Status)
	}

	members, err := s.leagueRepo.ListMembers(ctx, input.LeagueID)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("list members for draft start: %w", err)
	}
	if len(members) != l.Capacity {
		return draft.Draft{}, fmt.Errorf("%w: league has %d of %d members", ErrPreconditionFailed, len(members), l.Capacity)
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}

	draftID, err := s.idGen.NewID()
	if err != nil {
		return draft.Draft{}, fmt.Errorf("generate draft id: %w", err)
	}

	now := s.now().UTC()
	d := draft.Draft{
		ID:             draftID,
		LeagueID:       input.LeagueID,
		Status:         draft.StatusInProgress,
		Round:          1,
		PickIndex:      0,
		TotalPicksMade: 0,
		TotalRounds:    l.TotalRounds,
		StartedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.draftRepo.StartDraft(ctx, s.shuffle(userIDs), d); err != nil {
		if errors.Is(err, draft.ErrDraftExists) {
			// A concurrent retry won the start; hand back its result.
			existing, ok, getErr := s.draftRepo.GetByLeague(ctx, input.LeagueID)
			if getErr == nil && ok {
				return existing, nil
			}
			return draft.Draft{}, fmt.Errorf("%w: concurrent draft start", ErrConflict)
		}
		return draft.Draft{}, fmt.Errorf("start draft: %w", err)
	}

	s.logger.InfoContext(ctx, "draft started",
		"league_id", input.LeagueID,
		"draft_id", draftID,
		"capacity", l.Capacity,
		"total_rounds", l.TotalRounds,
	)

	return d, nil
}

// SubmitPick admits one pick. Validation and the write are one atomic unit
// against the store: when two requests race on the same league, the version
// guard in RecordPick lets exactly one through and the loser gets a definite
// rejection with nothing written.
func (s *DraftService) SubmitPick(ctx context.Context, input SubmitPickInput) (PickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.SubmitPick")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.RequestingUserID = strings.TrimSpace(input.RequestingUserID)
	if input.LeagueID == "" {
		return PickResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.RequestingUserID == "" {
		return PickResult{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if input.PlayerID <= 0 {
		return PickResult{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	d, exists, err := s.draftRepo.GetByLeague(ctx, input.LeagueID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: no draft for league=%s", ErrNotFound, input.LeagueID)
	}
	if d.Status != draft.StatusInProgress {
		return PickResult{}, fmt.Errorf("%w: draft status is %s", ErrInvalidState, d.Status)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return PickResult{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return PickResult{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	arena, err := s.rankArena(ctx, input.LeagueID, l.Capacity)
	if err != nil {
		return PickResult{}, err
	}

	if draft.IsComplete(d.TotalPicksMade, l.Capacity, d.TotalRounds) {
		return PickResult{}, fmt.Errorf("%w: draft already complete", ErrInvalidState)
	}

	ownerRank := draft.TurnOwnerRank(d.Round, d.PickIndex, l.Capacity)
	ownerUserID := arena[ownerRank-1]
	if ownerUserID != input.RequestingUserID {
		return PickResult{}, fmt.Errorf("%w: not your turn", ErrForbidden)
	}

	taken, err := s.draftRepo.IsPlayerTaken(ctx, input.LeagueID, input.PlayerID)
	if err != nil {
		return PickResult{}, fmt.Errorf("check player availability: %w", err)
	}
	if taken {
		return PickResult{}, fmt.Errorf("%w: player %d already drafted", ErrConflict, input.PlayerID)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return PickResult{}, fmt.Errorf("generate pick id: %w", err)
	}

	now := s.now().UTC()
	nextRound, nextPickIndex := draft.Advance(d.Round, d.PickIndex, l.Capacity)
	nextTotal := d.TotalPicksMade + 1
	rec := draft.PickRecord{
		Pick: draft.RosterPick{
			ID:          pickID,
			LeagueID:    input.LeagueID,
			UserID:      input.RequestingUserID,
			PlayerID:    input.PlayerID,
			OverallPick: draft.NextOverallPick(d.TotalPicksMade),
			Round:       d.Round,
			CreatedAt:   now,
		},
		ExpectedTotalPicks: d.TotalPicksMade,
		NextRound:          nextRound,
		NextPickIndex:      nextPickIndex,
		NextTotalPicks:     nextTotal,
		Complete:           draft.IsComplete(nextTotal, l.Capacity, d.TotalRounds),
		CompletedAt:        now,
	}

	if err := s.draftRepo.RecordPick(ctx, rec); err != nil {
		switch {
		case errors.Is(err, draft.ErrStaleDraft):
			return PickResult{}, fmt.Errorf("%w: draft advanced concurrently", ErrConflict)
		case errors.Is(err, draft.ErrPlayerTaken):
			return PickResult{}, fmt.Errorf("%w: player %d already drafted", ErrConflict, input.PlayerID)
		default:
			return PickResult{}, fmt.Errorf("record pick: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "pick recorded",
		"league_id", input.LeagueID,
		"user_id", input.RequestingUserID,
		"player_id", input.PlayerID,
		"pick_number", rec.Pick.OverallPick,
		"round", rec.Pick.Round,
		"draft_complete", rec.Complete,
	)

	return PickResult{
		PickNumber:    rec.Pick.OverallPick,
		Round:         rec.Pick.Round,
		DraftComplete: rec.Complete,
	}, nil
}

// DraftStatus reconstructs the current draft view without mutating anything.
// It is safe to call arbitrarily often, concurrently with SubmitPick.
func (s *DraftService) DraftStatus(ctx context.Context, leagueID string) (DraftStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.DraftStatus")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return DraftStatus{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return DraftStatus{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return DraftStatus{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return DraftStatus{}, fmt.Errorf("list members: %w", err)
	}

	status := DraftStatus{
		DraftStatus: DraftStatusNotStarted,
		Capacity:    l.Capacity,
		TotalRounds: l.TotalRounds,
	}
	for _, m := range members {
		if m.DraftRank == nil {
			continue
		}
		status.RankOrderedMembers = append(status.RankOrderedMembers, MemberSlot{UserID: m.UserID, Rank: *m.DraftRank})
	}

	d, exists, err := s.draftRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return DraftStatus{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return status, nil
	}

	status.DraftStatus = string(d.Status)
	status.TotalRounds = d.TotalRounds
	status.CurrentRound = d.Round
	status.CurrentPickIndex = d.PickIndex
	status.TotalPicksMade = d.TotalPicksMade

	if d.Status == draft.StatusInProgress && !draft.IsComplete(d.TotalPicksMade, l.Capacity, d.TotalRounds) {
		arena, err := s.rankArena(ctx, leagueID, l.Capacity)
		if err != nil {
			return DraftStatus{}, err
		}
		owner := arena[draft.TurnOwnerRank(d.Round, d.PickIndex, l.Capacity)-1]
		status.WhoseTurnUserID = &owner
	}

	return status, nil
}

// TurnOwner resolves the user currently on the clock, or ok=false when the
// draft is absent or complete.
func (s *DraftService) TurnOwner(ctx context.Context, leagueID string) (string, bool, error) {
	status, err := s.DraftStatus(ctx, leagueID)
	if err != nil {
		return "", false, err
	}
	if status.WhoseTurnUserID == nil {
		return "", false, nil
	}
	return *status.WhoseTurnUserID, true, nil
}

// rankArena builds the rank-addressed member array (index rank-1 -> user id).
// A hole or count mismatch means the draft order was never fully assigned,
// which is a store inconsistency rather than a caller error.
func (s *DraftService) rankArena(ctx context.Context, leagueID string, capacity int) ([]string, error) {
	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list ranked members: %w", err)
	}

	arena := make([]string, capacity)
	ranked := 0
	for _, m := range members {
		if m.DraftRank == nil {
			continue
		}
		rank := *m.DraftRank
		if rank < 1 || rank > capacity || arena[rank-1] != "" {
			return nil, fmt.Errorf("%w: invalid draft rank %d for league=%s", ErrInternal, rank, leagueID)
		}
		arena[rank-1] = m.UserID
		ranked++
	}
	if ranked != capacity {
		s.logger.WarnContext(ctx, "ranked member count mismatch",
			"league_id", leagueID,
			"ranked", ranked,
			"capacity", capacity,
		)
		return nil, fmt.Errorf("%w: league has %d ranked members, expected %d", ErrInternal, ranked, capacity)
	}

	return arena, nil
}
