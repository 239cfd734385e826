package cache

import (
	"context"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	basecache "github.com/draftday/draftroom/internal/platform/cache"
)

// LeagueRepository caches league reads in front of the persistent store.
// Writes pass through and drop the affected keys, so a status poll that
// follows a write in the same process sees fresh data.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, owner league.Member) error {
	if err := r.next.Create(ctx, l, owner); err != nil {
		return err
	}
	r.cache.Delete(ctx, "league:list")
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) UpdateStatus(ctx context.Context, leagueID string, from, to league.Status) error {
	err := r.next.UpdateStatus(ctx, leagueID, from, to)
	if err == nil {
		r.cache.Delete(ctx, "league:id:"+leagueID)
		r.cache.Delete(ctx, "league:list")
	}
	return err
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	if err := r.next.AddMember(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, "league:members:"+m.LeagueID)
	return nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	key := "league:members:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]league.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.Member)
	return append([]league.Member(nil), items...), nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

// DraftRepository caches the hot status-poll reads. Availability checks and
// the conditional writes always go straight through; correctness comes from
// the store, the cache only absorbs read traffic.
type DraftRepository struct {
	next        draft.Repository
	leagueCache *basecache.Store
	cache       *basecache.Store
}

func NewDraftRepository(next draft.Repository, cache, leagueCache *basecache.Store) *DraftRepository {
	return &DraftRepository{next: next, cache: cache, leagueCache: leagueCache}
}

func (r *DraftRepository) StartDraft(ctx context.Context, ranks []draft.RankAssignment, d draft.Draft) error {
	if err := r.next.StartDraft(ctx, ranks, d); err != nil {
		return err
	}
	r.invalidate(ctx, d.LeagueID)
	return nil
}

func (r *DraftRepository) GetByLeague(ctx context.Context, leagueID string) (draft.Draft, bool, error) {
	key := "draft:league:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedDraftByLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return draft.Draft{}, false, err
	}

	cached, _ := v.(cachedDraftByLeague)
	return cached.value, cached.exists, nil
}

func (r *DraftRepository) ListInProgress(ctx context.Context) ([]draft.Draft, error) {
	return r.next.ListInProgress(ctx)
}

func (r *DraftRepository) ListPicks(ctx context.Context, leagueID string) ([]draft.RosterPick, error) {
	key := "draft:picks:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListPicks(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]draft.RosterPick(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]draft.RosterPick)
	return append([]draft.RosterPick(nil), items...), nil
}

func (r *DraftRepository) IsPlayerTaken(ctx context.Context, leagueID string, playerID int64) (bool, error) {
	return r.next.IsPlayerTaken(ctx, leagueID, playerID)
}

func (r *DraftRepository) RecordPick(ctx context.Context, rec draft.PickRecord) error {
	if err := r.next.RecordPick(ctx, rec); err != nil {
		return err
	}
	r.invalidate(ctx, rec.Pick.LeagueID)
	return nil
}

// invalidate drops every cached view a draft write can change, including the
// league row whose status the write may have advanced.
func (r *DraftRepository) invalidate(ctx context.Context, leagueID string) {
	r.cache.Delete(ctx, "draft:league:"+leagueID)
	r.cache.Delete(ctx, "draft:picks:"+leagueID)
	if r.leagueCache != nil {
		r.leagueCache.Delete(ctx, "league:id:"+leagueID)
		r.leagueCache.Delete(ctx, "league:members:"+leagueID)
		r.leagueCache.Delete(ctx, "league:list")
	}
}

type cachedDraftByLeague struct {
	value  draft.Draft
	exists bool
}
