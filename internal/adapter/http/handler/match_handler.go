package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// MatchHandler handles match and competitor HTTP requests.
type MatchHandler struct {
	matchUC      *usecase.MatchUseCase
	settlementUC *usecase.SettlementUseCase
	ledgerUC     *usecase.LedgerUseCase
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(
	matchUC *usecase.MatchUseCase,
	settlementUC *usecase.SettlementUseCase,
	ledgerUC *usecase.LedgerUseCase,
) *MatchHandler {
	return &MatchHandler{
		matchUC:      matchUC,
		settlementUC: settlementUC,
		ledgerUC:     ledgerUC,
	}
}

// CreateCompetitor registers a new competitor.
func (h *MatchHandler) CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompetitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Tag == "" {
		writeError(w, http.StatusBadRequest, "missing competitor tag", "")
		return
	}

	competitor, err := h.matchUC.CreateCompetitor(r.Context(), req.Tag, req.Rating)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create competitor", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.CompetitorFromDomain(competitor))
}

// GetCompetitor retrieves a competitor by ID.
func (h *MatchHandler) GetCompetitor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing competitor ID", "")
		return
	}

	competitor, err := h.matchUC.GetCompetitor(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get competitor", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CompetitorFromDomain(competitor))
}

// Create schedules a new match.
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	scheduledAt := time.Now().UTC()
	if req.ScheduledAt != nil {
		scheduledAt = *req.ScheduledAt
	}

	match, err := h.matchUC.CreateMatch(r.Context(), req.CompetitorAID, req.CompetitorBID, scheduledAt)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create match", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MatchFromDomain(match))
}

// Get retrieves a match by ID.
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	match, err := h.matchUC.Get(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get match", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MatchFromDomain(match))
}

// List lists matches, optionally filtered by status.
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	var status *domain.MatchStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.MatchStatus(s)
		status = &st
	}

	matches, err := h.matchUC.List(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list matches", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MatchesFromDomain(matches))
}

// Transition moves a match through its lifecycle.
func (h *MatchHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	var req dto.TransitionMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	match, err := h.matchUC.Transition(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to transition match", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MatchFromDomain(match))
}

// SetWagering opens or closes the wagering window.
func (h *MatchHandler) SetWagering(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	var req dto.SetWageringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	match, err := h.matchUC.SetWageringOpen(r.Context(), id, req.Open)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update wagering window", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MatchFromDomain(match))
}

// Settle settles all pending wagers on a completed match. Safe to repeat;
// a second call reports the same summary.
func (h *MatchHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	summary, err := h.settlementUC.SettleMatch(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle match", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromSummary(summary))
}

// CancelWagers refunds all pending wagers on a cancelled match.
func (h *MatchHandler) CancelWagers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	summary, err := h.settlementUC.CancelMatchWagers(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel match wagers", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromSummary(summary))
}

// Position reports the house net position for a match.
func (h *MatchHandler) Position(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	position, err := h.ledgerUC.Position(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get match position", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PositionFromDomain(position))
}
