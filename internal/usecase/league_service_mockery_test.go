package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	draftmock "github.com/draftday/draftroom/internal/mocks/domain/draft"
	leaguemock "github.com/draftday/draftroom/internal/mocks/domain/league"
	"github.com/draftday/draftroom/internal/platform/logging"
)

func TestLeagueService_ListRoster_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	draftRepo := draftmock.NewRepository(t)

	service := NewLeagueService(leagueRepo, draftRepo, &seqIDGenerator{prefix: "lg"}, logging.NewNop(), 15)
	leagueID := "lg-mock"
	expectedPicks := []draft.RosterPick{
		{ID: "pick-1", LeagueID: leagueID, UserID: "user-a", PlayerID: 101, OverallPick: 1, Round: 1},
		{ID: "pick-2", LeagueID: leagueID, UserID: "user-b", PlayerID: 102, OverallPick: 2, Round: 1},
	}

	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	draftRepo.
		On("ListPicks", mock.Anything, leagueID).
		Return(expectedPicks, nil).
		Once()

	got, err := service.ListRoster(ctx, leagueID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(got) != len(expectedPicks) {
		t.Fatalf("unexpected pick count: got=%d want=%d", len(got), len(expectedPicks))
	}
	if got[0].ID != expectedPicks[0].ID {
		t.Fatalf("unexpected pick id: got=%s want=%s", got[0].ID, expectedPicks[0].ID)
	}
}

func TestLeagueService_ListRoster_StoreErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	draftRepo := draftmock.NewRepository(t)

	service := NewLeagueService(leagueRepo, draftRepo, &seqIDGenerator{prefix: "lg"}, logging.NewNop(), 15)
	leagueID := "lg-mock"
	storeErr := errors.New("connection reset")

	leagueRepo.
		On("GetByID", mock.Anything, leagueID).
		Return(league.League{ID: leagueID}, true, nil).
		Once()
	draftRepo.
		On("ListPicks", mock.Anything, leagueID).
		Return(nil, storeErr).
		Once()

	if _, err := service.ListRoster(ctx, leagueID); !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
