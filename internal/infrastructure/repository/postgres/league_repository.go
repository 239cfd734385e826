package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/draftday/draftroom/internal/domain/league"
	qb "github.com/draftday/draftroom/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, owner league.Member) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create league: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leagueQuery, leagueArgs, err := qb.InsertModel("leagues", leagueInsertModel{
		PublicID:    l.ID,
		Name:        l.Name,
		OwnerUserID: l.OwnerUserID,
		Capacity:    l.Capacity,
		TotalRounds: l.TotalRounds,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, leagueQuery, leagueArgs...); err != nil {
		return fmt.Errorf("create league: %w", err)
	}

	memberQuery, memberArgs, err := qb.InsertModel("league_members", memberInsertModel{
		LeaguePublicID: owner.LeagueID,
		UserID:         owner.UserID,
		JoinedAt:       owner.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create owner member query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("create owner member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("public_id", leagueID)).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) UpdateStatus(ctx context.Context, leagueID string, from, to league.Status) error {
	query, args, err := qb.Update("leagues").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", leagueID),
			qb.Eq("status", string(from)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update league status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update league status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update league status: %w", err)
	}
	if affected == 0 {
		return league.ErrStatusChanged
	}

	return nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	query, args, err := qb.InsertModel("league_members", memberInsertModel{
		LeaguePublicID: m.LeagueID,
		UserID:         m.UserID,
		JoinedAt:       m.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build add member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return league.ErrMemberExists
		}
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("draft_rank NULLS LAST", "joined_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select members query: %w", err)
	}

	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
