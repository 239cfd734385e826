package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	"github.com/draftday/draftroom/internal/platform/logging"
)

// PlayerCatalog supplies the draftable player pool for autopicks.
type PlayerCatalog interface {
	ListPlayerIDs(ctx context.Context) ([]int64, error)
}

type AutopickResult struct {
	SweptDrafts  int                  `json:"swept_drafts"`
	PickedCount  int                  `json:"picked_count"`
	SkippedCount int                  `json:"skipped_count"`
	FailedCount  int                  `json:"failed_count"`
	WorkerCount  int                  `json:"worker_count"`
	Drafts       []AutopickTaskResult `json:"drafts"`
}

type AutopickTaskResult struct {
	LeagueID   string `json:"league_id"`
	UserID     string `json:"user_id,omitempty"`
	PlayerID   int64  `json:"player_id,omitempty"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	autopickStatusPicked  = "picked"
	autopickStatusSkipped = "skipped"
	autopickStatusFailed  = "failed"
)

// AutopickService sweeps in-progress drafts and picks on behalf of members
// who have left their turn idle past the deadline. Sweeps from multiple
// replicas are safe: the pick admission's version guard makes duplicate
// autopicks lose cleanly.
type AutopickService struct {
	drafts     *DraftService
	leagueRepo league.Repository
	draftRepo  draft.Repository
	catalog    PlayerCatalog
	logger     *logging.Logger
	now        func() time.Time

	idleAfter  time.Duration
	interval   time.Duration
	maxWorkers int
}

func NewAutopickService(
	drafts *DraftService,
	leagueRepo league.Repository,
	draftRepo draft.Repository,
	catalog PlayerCatalog,
	logger *logging.Logger,
	idleAfter time.Duration,
	interval time.Duration,
	maxWorkers int,
) *AutopickService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &AutopickService{
		drafts:     drafts,
		leagueRepo: leagueRepo,
		draftRepo:  draftRepo,
		catalog:    catalog,
		logger:     logger,
		now:        time.Now,
		idleAfter:  idleAfter,
		interval:   interval,
		maxWorkers: maxWorkers,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *AutopickService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "autopick sweep failed", "error", err)
			}
		}
	}
}

// Sweep visits every idle in-progress draft once and makes at most one
// autopick per draft.
func (s *AutopickService) Sweep(ctx context.Context) (AutopickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutopickService.Sweep")
	defer span.End()

	drafts, err := s.draftRepo.ListInProgress(ctx)
	if err != nil {
		return AutopickResult{}, fmt.Errorf("list in-progress drafts: %w", err)
	}

	cutoff := s.now().UTC().Add(-s.idleAfter)
	idle := drafts[:0:0]
	for _, d := range drafts {
		if d.UpdatedAt.Before(cutoff) {
			idle = append(idle, d)
		}
	}

	result := AutopickResult{SweptDrafts: len(idle), WorkerCount: s.maxWorkers}
	if len(idle) == 0 {
		return result, nil
	}

	rows := make(chan AutopickTaskResult, len(idle))

	var pickedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return AutopickResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, d := range idle {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.autopickOne(ctx, d.LeagueID)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case autopickStatusPicked:
				pickedCount.Add(1)
			case autopickStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return AutopickResult{}, fmt.Errorf("submit autopick to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Drafts = append(result.Drafts, row)
	}
	sort.SliceStable(result.Drafts, func(i, j int) bool {
		return result.Drafts[i].LeagueID < result.Drafts[j].LeagueID
	})

	result.PickedCount = int(pickedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	return result, nil
}

func (s *AutopickService) autopickOne(ctx context.Context, leagueID string) AutopickTaskResult {
	row := AutopickTaskResult{LeagueID: leagueID}

	owner, ok, err := s.drafts.TurnOwner(ctx, leagueID)
	if err != nil {
		row.Status = autopickStatusFailed
		row.Message = err.Error()
		return row
	}
	if !ok {
		// Completed between the sweep listing and now.
		row.Status = autopickStatusSkipped
		return row
	}
	row.UserID = owner

	candidates, err := s.catalog.ListPlayerIDs(ctx)
	if err != nil {
		row.Status = autopickStatusFailed
		row.Message = fmt.Sprintf("list player catalog: %v", err)
		return row
	}

	for _, playerID := range candidates {
		taken, err := s.draftRepo.IsPlayerTaken(ctx, leagueID, playerID)
		if err != nil {
			row.Status = autopickStatusFailed
			row.Message = err.Error()
			return row
		}
		if taken {
			continue
		}

		_, err = s.drafts.SubmitPick(ctx, SubmitPickInput{
			LeagueID:         leagueID,
			RequestingUserID: owner,
			PlayerID:         playerID,
		})
		switch {
		case err == nil:
			row.Status = autopickStatusPicked
			row.PlayerID = playerID
			s.logger.InfoContext(ctx, "autopick recorded",
				"league_id", leagueID,
				"user_id", owner,
				"player_id", playerID,
			)
			return row
		case errors.Is(err, ErrConflict):
			// Lost a race on this player or on the turn; try the next one.
			continue
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidState):
			// The turn moved on without us.
			row.Status = autopickStatusSkipped
			return row
		default:
			row.Status = autopickStatusFailed
			row.Message = err.Error()
			return row
		}
	}

	row.Status = autopickStatusFailed
	row.Message = "no available player in catalog"
	return row
}
