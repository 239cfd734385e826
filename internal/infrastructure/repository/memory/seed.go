package memory

import (
	"time"

	"github.com/draftday/draftroom/internal/domain/league"
)

const (
	LeagueIDSundayDynasty = "sunday-dynasty-2026"
	LeagueIDOfficePool    = "office-pool-2026"
)

// SeedLeagues provides a small demo league set for the memory driver so the
// service is usable without a database.
func SeedLeagues() []league.League {
	created := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	return []league.League{
		{
			ID:          LeagueIDSundayDynasty,
			Name:        "Sunday Dynasty",
			OwnerUserID: "user-alice",
			Capacity:    4,
			TotalRounds: 15,
			Status:      league.StatusDraftScheduled,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          LeagueIDOfficePool,
			Name:        "Office Pool",
			OwnerUserID: "user-dewi",
			Capacity:    8,
			TotalRounds: 12,
			Status:      league.StatusOpen,
			CreatedAt:   created.Add(2 * time.Hour),
			UpdatedAt:   created.Add(2 * time.Hour),
		},
	}
}

func SeedMembers() []league.Member {
	joined := time.Date(2026, time.August, 1, 13, 0, 0, 0, time.UTC)

	members := []league.Member{
		{LeagueID: LeagueIDSundayDynasty, UserID: "user-alice"},
		{LeagueID: LeagueIDSundayDynasty, UserID: "user-bob"},
		{LeagueID: LeagueIDSundayDynasty, UserID: "user-carol"},
		{LeagueID: LeagueIDSundayDynasty, UserID: "user-dave"},
		{LeagueID: LeagueIDOfficePool, UserID: "user-dewi"},
	}
	for i := range members {
		members[i].JoinedAt = joined.Add(time.Duration(i) * time.Minute)
	}

	return members
}
