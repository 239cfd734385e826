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

type CreateLeagueInput struct {
	Name        string
	OwnerUserID string
	Capacity    int
	TotalRounds int
}

type JoinLeagueInput struct {
	LeagueID string
	UserID   string
}

// LeagueService manages league lifecycle up to the point the draft takes
// over: creation, membership, and roster reads.
type LeagueService struct {
	leagueRepo league.Repository
	draftRepo  draft.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time

	defaultTotalRounds int
}

func NewLeagueService(
	leagueRepo league.Repository,
	draftRepo draft.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	defaultTotalRounds int,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo:         leagueRepo,
		draftRepo:          draftRepo,
		idGen:              idGen,
		logger:             logger,
		now:                time.Now,
		defaultTotalRounds: defaultTotalRounds,
	}
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.OwnerUserID = strings.TrimSpace(input.OwnerUserID)
	if input.OwnerUserID == "" {
		return league.League{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if input.TotalRounds == 0 {
		input.TotalRounds = s.defaultTotalRounds
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:          id,
		Name:        input.Name,
		OwnerUserID: input.OwnerUserID,
		Capacity:    input.Capacity,
		TotalRounds: input.TotalRounds,
		Status:      league.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	owner := league.Member{
		LeagueID: id,
		UserID:   input.OwnerUserID,
		JoinedAt: now,
	}
	if err := s.leagueRepo.Create(ctx, l, owner); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created",
		"league_id", id,
		"owner_user_id", input.OwnerUserID,
		"capacity", l.Capacity,
		"total_rounds", l.TotalRounds,
	)

	return l, nil
}

// JoinLeague adds the caller to an open league. The membership insert is
// guarded against duplicates by the store; filling the last slot flips the
// league to draft_scheduled.
func (s *LeagueService) JoinLeague(ctx context.Context, input JoinLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinLeague")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.LeagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.UserID == "" {
		return league.League{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}
	if l.Status != league.StatusOpen {
		return league.League{}, fmt.Errorf("%w: league status is %s", ErrInvalidState, l.Status)
	}

	members, err := s.leagueRepo.ListMembers(ctx, input.LeagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("list members: %w", err)
	}
	for _, m := range members {
		if m.UserID == input.UserID {
			return league.League{}, fmt.Errorf("%w: already a member of league=%s", ErrConflict, input.LeagueID)
		}
	}
	if len(members) >= l.Capacity {
		return league.League{}, fmt.Errorf("%w: league is full", ErrConflict)
	}

	member := league.Member{
		LeagueID: input.LeagueID,
		UserID:   input.UserID,
		JoinedAt: s.now().UTC(),
	}
	if err := s.leagueRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, league.ErrMemberExists) {
			return league.League{}, fmt.Errorf("%w: already a member of league=%s", ErrConflict, input.LeagueID)
		}
		return league.League{}, fmt.Errorf("add member: %w", err)
	}

	if len(members)+1 == l.Capacity {
		if err := s.leagueRepo.UpdateStatus(ctx, input.LeagueID, league.StatusOpen, league.StatusDraftScheduled); err != nil {
			if !errors.Is(err, league.ErrStatusChanged) {
				return league.League{}, fmt.Errorf("schedule draft: %w", err)
			}
			// A parallel join already scheduled the draft; nothing to do.
		} else {
			l.Status = league.StatusDraftScheduled
		}
		s.logger.InfoContext(ctx, "league full, draft scheduled", "league_id", input.LeagueID)
	}

	return l, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return l, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

// ListRoster returns every recorded pick for a league in draft order.
func (s *LeagueService) ListRoster(ctx context.Context, leagueID string) ([]draft.RosterPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListRoster")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	picks, err := s.draftRepo.ListPicks(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return picks, nil
}
