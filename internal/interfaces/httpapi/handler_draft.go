package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/draftday/draftroom/internal/usecase"
)

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	started, err := h.draftService.StartDraft(ctx, usecase.StartDraftInput{
		LeagueID:         leagueID,
		RequestingUserID: principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftDTO{
		ID:          started.ID,
		LeagueID:    started.LeagueID,
		Status:      string(started.Status),
		Round:       started.Round,
		TotalRounds: started.TotalRounds,
		StartedAt:   started.StartedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req submitPickRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := r.PathValue("leagueID")
	result, err := h.draftService.SubmitPick(ctx, usecase.SubmitPickInput{
		LeagueID:         leagueID,
		RequestingUserID: principal.UserID,
		PlayerID:         req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed",
			"league_id", leagueID,
			"user_id", principal.UserID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickResultDTO{
		PickNumber:    result.PickNumber,
		Round:         result.Round,
		PlayerID:      req.PlayerID,
		DraftComplete: result.DraftComplete,
	})
}

func (h *Handler) GetDraftStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftStatus")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	status, err := h.draftService.DraftStatus(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "draft status failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	members := make([]draftMemberDTO, 0, len(status.RankOrderedMembers))
	for _, m := range status.RankOrderedMembers {
		members = append(members, draftMemberDTO{UserID: m.UserID, Rank: m.Rank})
	}

	writeSuccess(ctx, w, http.StatusOK, draftStatusDTO{
		Status:           status.DraftStatus,
		Capacity:         status.Capacity,
		TotalRounds:      status.TotalRounds,
		CurrentRound:     status.CurrentRound,
		CurrentPickIndex: status.CurrentPickIndex,
		TotalPicksMade:   status.TotalPicksMade,
		WhoseTurnUserID:  status.WhoseTurnUserID,
		Members:          members,
	})
}

type submitPickRequest struct {
	PlayerID int64 `json:"playerId" validate:"required,gt=0"`
}

type draftDTO struct {
	ID          string `json:"id"`
	LeagueID    string `json:"leagueId"`
	Status      string `json:"status"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"totalRounds"`
	StartedAt   string `json:"startedAt"`
}

type pickResultDTO struct {
	PickNumber    int   `json:"pickNumber"`
	Round         int   `json:"round"`
	PlayerID      int64 `json:"playerId"`
	DraftComplete bool  `json:"draftComplete"`
}

type draftMemberDTO struct {
	UserID string `json:"userId"`
	Rank   int    `json:"rank"`
}

type draftStatusDTO struct {
	Status           string           `json:"status"`
	Capacity         int              `json:"capacity"`
	TotalRounds      int              `json:"totalRounds"`
	CurrentRound     int              `json:"currentRound"`
	CurrentPickIndex int              `json:"currentPickIndex"`
	TotalPicksMade   int              `json:"totalPicksMade"`
	WhoseTurnUserID  *string          `json:"whoseTurnUserId"`
	Members          []draftMemberDTO `json:"members"`
}
