package league

import (
	"context"
	"errors"
)

// ErrStatusChanged is returned by UpdateStatus when the league was not in
// the expected status at write time.
var ErrStatusChanged = errors.New("league status changed")

// ErrMemberExists is returned by AddMember when the user already holds a
// membership row for the league.
var ErrMemberExists = errors.New("league member exists")

// Repository describes league and membership persistence needs from use cases.
type Repository interface {
	// Create persists a league together with its owner's membership row in
	// one atomic unit.
	Create(ctx context.Context, l League, owner Member) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	List(ctx context.Context) ([]League, error)
	// UpdateStatus moves a league from one status to another; the write is
	// conditional on the current status still being from.
	UpdateStatus(ctx context.Context, leagueID string, from, to Status) error
	AddMember(ctx context.Context, m Member) error
	// ListMembers returns members ordered by draft rank when assigned,
	// otherwise by join time.
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
}
