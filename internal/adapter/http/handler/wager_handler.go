package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// WagerHandler handles wager-related HTTP requests.
type WagerHandler struct {
	wagerUC *usecase.WagerUseCase
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(wagerUC *usecase.WagerUseCase) *WagerHandler {
	return &WagerHandler{wagerUC: wagerUC}
}

// Place places a new wager for the calling account.
func (h *WagerHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceWagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wager, err := h.wagerUC.PlaceWager(r.Context(), req.ToUseCaseInput(accountID(r.Context())))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to place wager", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WagerFromDomain(wager))
}

// Cancel voids a pending wager and refunds the stake.
func (h *WagerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	wager, err := h.wagerUC.CancelWager(r.Context(), accountID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to cancel wager", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// Get retrieves one of the calling account's wagers.
func (h *WagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wager ID", "")
		return
	}

	wager, err := h.wagerUC.Get(r.Context(), accountID(r.Context()), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wager", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WagerFromDomain(wager))
}

// List lists the calling account's wagers, optionally filtered by status.
func (h *WagerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	var status *domain.WagerStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.WagerStatus(s)
		status = &st
	}

	wagers, err := h.wagerUC.ListByAccount(r.Context(), accountID(r.Context()), status, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wagers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WagersFromDomain(wagers))
}
