package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftday/draftroom/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	orders  []string
	members map[string][]league.Member
}

func NewLeagueRepository(leagues []league.League, members []league.Member) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))
	byLeague := make(map[string][]league.Member)

	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}
	for _, m := range members {
		byLeague[m.LeagueID] = append(byLeague[m.LeagueID], m)
	}

	return &LeagueRepository{
		items:   items,
		orders:  orders,
		members: byLeague,
	}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League, owner league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[l.ID] = l
	r.orders = append(r.orders, l.ID)
	r.members[l.ID] = append(r.members[l.ID], owner)
	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) UpdateStatus(_ context.Context, leagueID string, from, to league.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.items[leagueID]
	if !ok || l.Status != from {
		return league.ErrStatusChanged
	}

	l.Status = to
	r.items[leagueID] = l
	return nil
}

func (r *LeagueRepository) AddMember(_ context.Context, m league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.members[m.LeagueID] {
		if existing.UserID == m.UserID {
			return league.ErrMemberExists
		}
	}

	r.members[m.LeagueID] = append(r.members[m.LeagueID], m)
	return nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.members[leagueID]
	out := make([]league.Member, 0, len(items))
	out = append(out, items...)

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].DraftRank, out[j].DraftRank
		switch {
		case ri != nil && rj != nil:
			return *ri < *rj
		case ri != nil:
			return true
		case rj != nil:
			return false
		default:
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
	})

	return out, nil
}

// assignRanks is used by the draft repository to stamp ranks inside its own
// lock ordering; see DraftRepository.StartDraft.
func (r *LeagueRepository) assignRanks(leagueID string, ranks map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.members[leagueID]
	for i, m := range items {
		if rank, ok := ranks[m.UserID]; ok {
			v := rank
			items[i].DraftRank = &v
		}
	}
}
