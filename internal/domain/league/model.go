package league

import (
	"fmt"
	"time"
)

type Status string

const (
	// StatusOpen accepts new members.
	StatusOpen Status = "open"
	// StatusDraftScheduled is set automatically when the league fills.
	StatusDraftScheduled Status = "draft_scheduled"
	// StatusDraftInProgress is set by the draft coordinator at start.
	StatusDraftInProgress Status = "draft_in_progress"
	// StatusActive is set by the draft coordinator when the draft completes.
	StatusActive Status = "active"
)

// League is a fantasy league with a fixed member capacity. Its status is
// advanced by membership changes (open -> draft_scheduled) and by the draft
// coordinator (-> draft_in_progress -> active).
type League struct {
	ID          string
	Name        string
	OwnerUserID string
	Capacity    int
	TotalRounds int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.OwnerUserID == "" {
		return fmt.Errorf("league owner is required")
	}
	if l.Capacity < 2 {
		return fmt.Errorf("league capacity must be >= 2")
	}
	if l.TotalRounds < 1 {
		return fmt.Errorf("league total rounds must be >= 1")
	}
	return nil
}

// Startable reports whether a draft may begin from the current status.
func (l League) Startable() bool {
	return l.Status == StatusOpen || l.Status == StatusDraftScheduled
}

// Member is a user's seat in a league. DraftRank stays nil until the draft
// starts; once assigned it is a permutation of 1..capacity and never changes.
type Member struct {
	LeagueID  string
	UserID    string
	DraftRank *int
	JoinedAt  time.Time
}
