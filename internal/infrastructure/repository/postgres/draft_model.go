package postgres

import (
	"time"

	"github.com/draftday/draftroom/internal/domain/draft"
)

type draftTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	LeaguePublicID string     `db:"league_public_id"`
	Status         string     `db:"status"`
	Round          int        `db:"round"`
	PickIndex      int        `db:"pick_index"`
	TotalPicksMade int        `db:"total_picks_made"`
	TotalRounds    int        `db:"total_rounds"`
	StartedAt      time.Time  `db:"started_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (m draftTableModel) toDomain() draft.Draft {
	return draft.Draft{
		ID:             m.PublicID,
		LeagueID:       m.LeaguePublicID,
		Status:         draft.Status(m.Status),
		Round:          m.Round,
		PickIndex:      m.PickIndex,
		TotalPicksMade: m.TotalPicksMade,
		TotalRounds:    m.TotalRounds,
		StartedAt:      m.StartedAt,
		CompletedAt:    m.CompletedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type draftInsertModel struct {
	PublicID       string    `db:"public_id"`
	LeaguePublicID string    `db:"league_public_id"`
	Status         string    `db:"status"`
	Round          int       `db:"round"`
	PickIndex      int       `db:"pick_index"`
	TotalPicksMade int       `db:"total_picks_made"`
	TotalRounds    int       `db:"total_rounds"`
	StartedAt      time.Time `db:"started_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type rosterPickTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	LeaguePublicID string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	PlayerID       int64     `db:"player_id"`
	OverallPick    int       `db:"overall_pick"`
	Round          int       `db:"round"`
	CreatedAt      time.Time `db:"created_at"`
}

func (m rosterPickTableModel) toDomain() draft.RosterPick {
	return draft.RosterPick{
		ID:          m.PublicID,
		LeagueID:    m.LeaguePublicID,
		UserID:      m.UserID,
		PlayerID:    m.PlayerID,
		OverallPick: m.OverallPick,
		Round:       m.Round,
		CreatedAt:   m.CreatedAt,
	}
}

type rosterPickInsertModel struct {
	PublicID       string    `db:"public_id"`
	LeaguePublicID string    `db:"league_public_id"`
	UserID         string    `db:"user_id"`
	PlayerID       int64     `db:"player_id"`
	OverallPick    int       `db:"overall_pick"`
	Round          int       `db:"round"`
	CreatedAt      time.Time `db:"created_at"`
}
