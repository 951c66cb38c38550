package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
)

// PriceHandler handles price-related HTTP requests.
type PriceHandler struct {
	priceUC *usecase.PriceUseCase
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceUC *usecase.PriceUseCase) *PriceHandler {
	return &PriceHandler{priceUC: priceUC}
}

// Current returns the live price for a match market, initializing it from
// competitor ratings on first read.
func (h *PriceHandler) Current(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if matchID == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	snapshot, err := h.priceUC.CurrentPrice(r.Context(), matchID, marketQuery(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get price", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PriceFromDomain(snapshot))
}

// History lists a market's price snapshots oldest first.
func (h *PriceHandler) History(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if matchID == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 100)
	offset := parseIntQuery(r, "offset", 0)

	snapshots, err := h.priceUC.History(r.Context(), matchID, marketQuery(r), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get price history", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PricesFromDomain(snapshots))
}

// Health reports whether the market's current price looks sane.
func (h *PriceHandler) Health(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	if matchID == "" {
		writeError(w, http.StatusBadRequest, "missing match ID", "")
		return
	}

	health, err := h.priceUC.Health(r.Context(), matchID, marketQuery(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check price health", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PriceHealthResponse{
		Healthy: health.Healthy,
		Issues:  health.Issues,
	})
}

// marketQuery reads the market query parameter, defaulting to moneyline.
func marketQuery(r *http.Request) domain.MarketType {
	if m := r.URL.Query().Get("market"); m != "" {
		return domain.MarketType(m)
	}
	return domain.MarketMoneyline
}
