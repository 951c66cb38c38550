package handler

import (
	"net/http"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
	ledgerUC  *usecase.LedgerUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase, ledgerUC *usecase.LedgerUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, ledgerUC: ledgerUC}
}

// Me returns the calling account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.Get(r.Context(), accountID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Entries lists the calling account's ledger entries.
func (h *AccountHandler) Entries(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.Entries(r.Context(), accountID(r.Context()), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Stats returns the calling account's betting record.
func (h *AccountHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.accountUC.Stats(r.Context(), accountID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get stats", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WagerStatsFromDomain(stats))
}

// DailyBonus credits the daily bonus to the calling account.
func (h *AccountHandler) DailyBonus(w http.ResponseWriter, r *http.Request) {
	entry, err := h.accountUC.DailyBonus(r.Context(), accountID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to credit bonus", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Reconcile verifies the calling account's balance against its ledger.
func (h *AccountHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerUC.Reconcile(r.Context(), accountID(r.Context()))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
