package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	"github.com/draftday/draftroom/internal/platform/logging"
	"github.com/draftday/draftroom/internal/usecase"
)

type Handler struct {
	leagueService *usecase.LeagueService
	draftService  *usecase.DraftService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	draftService *usecase.DraftService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService: leagueService,
		draftService:  draftService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	l, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(l))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		Name:        req.Name,
		OwnerUserID: principal.UserID,
		Capacity:    req.Capacity,
		TotalRounds: req.TotalRounds,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(created))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	joined, err := h.leagueService.JoinLeague(ctx, usecase.JoinLeagueInput{
		LeagueID: leagueID,
		UserID:   principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(joined))
}

func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoster")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	picks, err := h.leagueService.ListRoster(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list roster failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterPickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, rosterPickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type createLeagueRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Capacity    int    `json:"capacity" validate:"required,min=2,max=20"`
	TotalRounds int    `json:"totalRounds" validate:"omitempty,min=1,max=30"`
}

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"ownerUserId"`
	Capacity    int    `json:"capacity"`
	TotalRounds int    `json:"totalRounds"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

func leagueToDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		OwnerUserID: l.OwnerUserID,
		Capacity:    l.Capacity,
		TotalRounds: l.TotalRounds,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type rosterPickDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	PlayerID    int64  `json:"playerId"`
	OverallPick int    `json:"overallPick"`
	Round       int    `json:"round"`
	PickedAt    string `json:"pickedAt"`
}

func rosterPickToDTO(p draft.RosterPick) rosterPickDTO {
	return rosterPickDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		PlayerID:    p.PlayerID,
		OverallPick: p.OverallPick,
		Round:       p.Round,
		PickedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
