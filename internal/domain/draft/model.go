package draft

import "time"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Draft is the mutable cursor of a league's draft. There is exactly one per
// league. TotalPicksMade doubles as the optimistic-concurrency version: every
// accepted pick increments it by one, and writers condition their update on
// the value they read.
type Draft struct {
	ID             string
	LeagueID       string
	Status         Status
	Round          int // 1-based
	PickIndex      int // 0-based position within the round
	TotalPicksMade int
	TotalRounds    int
	StartedAt      time.Time
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

// RosterPick is an append-only record of one accepted pick. OverallPick is
// the league-wide 1-based pick counter across all rounds.
type RosterPick struct {
	ID          string
	LeagueID    string
	UserID      string
	PlayerID    int64
	OverallPick int
	Round       int
	CreatedAt   time.Time
}

// RankAssignment binds one member to a draft-order rank in 1..capacity.
type RankAssignment struct {
	UserID string
	Rank   int
}

// PickRecord carries everything the store needs to admit one pick in a
// single atomic unit: the new roster row, the advanced draft cursor, and
// the version guard.
type PickRecord struct {
	Pick RosterPick

	// ExpectedTotalPicks is the TotalPicksMade value read before validation.
	// The draft update must be conditional on it being unchanged.
	ExpectedTotalPicks int

	NextRound      int
	NextPickIndex  int
	NextTotalPicks int

	// Complete marks the final pick: the draft flips to completed and the
	// league to active in the same unit.
	Complete    bool
	CompletedAt time.Time
}
