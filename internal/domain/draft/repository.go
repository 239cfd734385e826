package draft

import (
	"context"
	"errors"
)

var (
	// ErrStaleDraft is returned by RecordPick when the draft row advanced
	// between read and write (lost optimistic-concurrency race).
	ErrStaleDraft = errors.New("draft state is stale")
	// ErrPlayerTaken is returned by RecordPick when the player already has a
	// roster pick in the league.
	ErrPlayerTaken = errors.New("player already drafted")
	// ErrDraftExists is returned by StartDraft when the league already has a
	// draft row.
	ErrDraftExists = errors.New("draft already exists")
)

// Repository is the store contract for drafts and roster picks. All
// coordination between concurrent pick submissions happens here: the service
// layer is stateless and any number of replicas may call RecordPick for the
// same league at once.
type Repository interface {
	// StartDraft assigns member ranks, inserts the draft row, and moves the
	// league to draft_in_progress as one all-or-nothing operation.
	StartDraft(ctx context.Context, ranks []RankAssignment, d Draft) error
	GetByLeague(ctx context.Context, leagueID string) (Draft, bool, error)
	ListInProgress(ctx context.Context) ([]Draft, error)
	// ListPicks returns a league's picks ordered by overall pick number.
	ListPicks(ctx context.Context, leagueID string) ([]RosterPick, error)
	IsPlayerTaken(ctx context.Context, leagueID string, playerID int64) (bool, error)
	// RecordPick inserts the roster pick and advances the draft cursor in one
	// atomic unit, conditional on rec.ExpectedTotalPicks. It must leave no
	// partial state behind on ErrStaleDraft or ErrPlayerTaken.
	RecordPick(ctx context.Context, rec PickRecord) error
}
