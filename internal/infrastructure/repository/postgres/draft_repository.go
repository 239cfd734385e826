package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	qb "github.com/draftday/draftroom/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// StartDraft inserts the draft row, stamps every member's draft rank, and
// moves the league to draft_in_progress, all in one transaction. The unique
// index on drafts.league_public_id makes concurrent starts collide.
func (r *DraftRepository) StartDraft(ctx context.Context, ranks []draft.RankAssignment, d draft.Draft) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx start draft: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	draftQuery, draftArgs, err := qb.InsertModel("drafts", draftInsertModel{
		PublicID:       d.ID,
		LeaguePublicID: d.LeagueID,
		Status:         string(d.Status),
		Round:          d.Round,
		PickIndex:      d.PickIndex,
		TotalPicksMade: d.TotalPicksMade,
		TotalRounds:    d.TotalRounds,
		StartedAt:      d.StartedAt,
		UpdatedAt:      d.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create draft query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, draftQuery, draftArgs...); err != nil {
		if isUniqueViolation(err) {
			return draft.ErrDraftExists
		}
		return fmt.Errorf("create draft: %w", err)
	}

	for _, ra := range ranks {
		rankQuery, rankArgs, err := qb.Update("league_members").
			Set("draft_rank", ra.Rank).
			Where(
				qb.Eq("league_public_id", d.LeagueID),
				qb.Eq("user_id", ra.UserID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build assign rank query: %w", err)
		}
		result, err := tx.ExecContext(ctx, rankQuery, rankArgs...)
		if err != nil {
			return fmt.Errorf("assign draft rank: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected assign draft rank: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("assign draft rank: member %s not found", ra.UserID)
		}
	}

	statusQuery, statusArgs, err := qb.Update("leagues").
		Set("status", string(league.StatusDraftInProgress)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", d.LeagueID),
			qb.Expr("status IN (?, ?)", string(league.StatusOpen), string(league.StatusDraftScheduled)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build league in-progress query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, statusQuery, statusArgs...); err != nil {
		return fmt.Errorf("mark league draft in progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit start draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) GetByLeague(ctx context.Context, leagueID string) (draft.Draft, bool, error) {
	query, args, err := qb.Select("*").From("drafts").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return draft.Draft{}, false, fmt.Errorf("build get draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft by league: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) ListInProgress(ctx context.Context) ([]draft.Draft, error) {
	query, args, err := qb.Select("*").From("drafts").
		Where(qb.Eq("status", string(draft.StatusInProgress))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select in-progress drafts query: %w", err)
	}

	var rows []draftTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select in-progress drafts: %w", err)
	}

	out := make([]draft.Draft, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DraftRepository) ListPicks(ctx context.Context, leagueID string) ([]draft.RosterPick, error) {
	query, args, err := qb.Select("*").From("roster_picks").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("overall_pick").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks query: %w", err)
	}

	var rows []rosterPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]draft.RosterPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DraftRepository) IsPlayerTaken(ctx context.Context, leagueID string, playerID int64) (bool, error) {
	query, args, err := qb.Select("1").From("roster_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("player_id", playerID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build player taken query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check player taken: %w", err)
	}

	return true, nil
}

// RecordPick advances the draft and appends the pick atomically. The UPDATE
// is guarded by total_picks_made, so when submissions race on the same turn
// exactly one commits; the rest roll back with
// draft.ErrStaleDraft and leave no rows behind.
func (r *DraftRepository) RecordPick(ctx context.Context, rec draft.PickRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx record pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	advance := qb.Update("drafts").
		Set("round", rec.NextRound).
		Set("pick_index", rec.NextPickIndex).
		Set("total_picks_made", rec.NextTotalPicks).
		SetExpr("updated_at", "NOW()")
	if rec.Complete {
		advance = advance.
			Set("status", string(draft.StatusCompleted)).
			Set("completed_at", rec.CompletedAt)
	}
	advanceQuery, advanceArgs, err := advance.
		Where(
			qb.Eq("league_public_id", rec.Pick.LeagueID),
			qb.Eq("total_picks_made", rec.ExpectedTotalPicks),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build advance draft query: %w", err)
	}

	result, err := tx.ExecContext(ctx, advanceQuery, advanceArgs...)
	if err != nil {
		return fmt.Errorf("advance draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected advance draft: %w", err)
	}
	if affected == 0 {
		return draft.ErrStaleDraft
	}

	pickQuery, pickArgs, err := qb.InsertModel("roster_picks", rosterPickInsertModel{
		PublicID:       rec.Pick.ID,
		LeaguePublicID: rec.Pick.LeagueID,
		UserID:         rec.Pick.UserID,
		PlayerID:       rec.Pick.PlayerID,
		OverallPick:    rec.Pick.OverallPick,
		Round:          rec.Pick.Round,
		CreatedAt:      rec.Pick.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pickQuery, pickArgs...); err != nil {
		if isUniqueViolation(err) {
			return draft.ErrPlayerTaken
		}
		return fmt.Errorf("insert pick: %w", err)
	}

	if rec.Complete {
		activateQuery, activateArgs, err := qb.Update("leagues").
			Set("status", string(league.StatusActive)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", rec.Pick.LeagueID),
				qb.Eq("status", string(league.StatusDraftInProgress)),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build activate league query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, activateQuery, activateArgs...); err != nil {
			return fmt.Errorf("activate league: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record pick: %w", err)
	}

	return nil
}
