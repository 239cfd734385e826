package postgres

import (
	"database/sql"
	"time"

	"github.com/draftday/draftroom/internal/domain/league"
)

type leagueTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	OwnerUserID string    `db:"owner_user_id"`
	Capacity    int       `db:"capacity"`
	TotalRounds int       `db:"total_rounds"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:          m.PublicID,
		Name:        m.Name,
		OwnerUserID: m.OwnerUserID,
		Capacity:    m.Capacity,
		TotalRounds: m.TotalRounds,
		Status:      league.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type leagueInsertModel struct {
	PublicID    string    `db:"public_id"`
	Name        string    `db:"name"`
	OwnerUserID string    `db:"owner_user_id"`
	Capacity    int       `db:"capacity"`
	TotalRounds int       `db:"total_rounds"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type memberTableModel struct {
	ID             int64         `db:"id"`
	LeaguePublicID string        `db:"league_public_id"`
	UserID         string        `db:"user_id"`
	DraftRank      sql.NullInt64 `db:"draft_rank"`
	JoinedAt       time.Time     `db:"joined_at"`
}

func (m memberTableModel) toDomain() league.Member {
	out := league.Member{
		LeagueID: m.LeaguePublicID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
	if m.DraftRank.Valid {
		rank := int(m.DraftRank.Int64)
		out.DraftRank = &rank
	}
	return out
}

type memberInsertModel struct {
	LeaguePublicID string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	JoinedAt       time.Time `db:"joined_at"`
}
