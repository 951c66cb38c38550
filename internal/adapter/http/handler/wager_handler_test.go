package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gowager/internal/adapter/http/dto"
	"github.com/iho/gowager/internal/adapter/http/middleware"
	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
	"github.com/iho/gowager/internal/usecase/mocks"
)

type wagerHandlerFixture struct {
	handler     *WagerHandler
	accountRepo *mocks.MockAccountRepository
	matchRepo   *mocks.MockMatchRepository
	wagerRepo   *mocks.MockWagerRepository
}

func newWagerHandlerFixture() *wagerHandlerFixture {
	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	matchRepo := mocks.NewMockMatchRepository()
	competitorRepo := mocks.NewMockCompetitorRepository()
	wagerRepo := mocks.NewMockWagerRepository()
	snapshotRepo := mocks.NewMockSnapshotRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	ledger := usecase.NewLedgerUseCase(txManager, accountRepo, entryRepo, idGen)
	prices := usecase.NewPriceUseCase(txManager, matchRepo, competitorRepo, snapshotRepo, idGen, nil)
	wagerUC := usecase.NewWagerUseCase(txManager, matchRepo, wagerRepo, outboxRepo, ledger, prices, idGen, nil, nil, 0)

	accountRepo.Seed(&domain.Account{ID: "acct-1", Balance: 10_000_00})
	matchRepo.Seed(&domain.Match{
		ID:            "match-1",
		CompetitorAID: "comp-a",
		CompetitorBID: "comp-b",
		Status:        domain.MatchScheduled,
		WageringOpen:  true,
	})
	_ = snapshotRepo.Create(context.Background(), &mocks.MockTransaction{}, &domain.PriceSnapshot{
		ID:      "snap-1",
		MatchID: "match-1",
		Market:  domain.MarketMoneyline,
		PriceA:  -111,
		PriceB:  -111,
	})

	return &wagerHandlerFixture{
		handler:     NewWagerHandler(wagerUC),
		accountRepo: accountRepo,
		matchRepo:   matchRepo,
		wagerRepo:   wagerRepo,
	}
}

func withAccount(r *http.Request, accountID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.AccountContextKey, accountID)
	return r.WithContext(ctx)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestWagerHandler_Place_Success(t *testing.T) {
	f := newWagerHandlerFixture()

	body, _ := json.Marshal(dto.PlaceWagerRequest{
		MatchID: "match-1",
		Side:    string(domain.SideA),
		Stake:   50_00,
	})

	req := httptest.NewRequest(http.MethodPost, "/wagers", bytes.NewReader(body))
	req = withAccount(req, "acct-1")
	rec := httptest.NewRecorder()

	f.handler.Place(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.WagerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Price != -111 || resp.PotentialPayout != 95_04 {
		t.Fatalf("unexpected wager response: %+v", resp)
	}
}

func TestWagerHandler_Place_InvalidJSON(t *testing.T) {
	f := newWagerHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/wagers", bytes.NewBufferString("{invalid json"))
	req = withAccount(req, "acct-1")
	rec := httptest.NewRecorder()

	f.handler.Place(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWagerHandler_Place_InsufficientFunds(t *testing.T) {
	f := newWagerHandlerFixture()

	body, _ := json.Marshal(dto.PlaceWagerRequest{
		MatchID: "match-1",
		Side:    string(domain.SideA),
		Stake:   20_000_00,
	})

	req := httptest.NewRequest(http.MethodPost, "/wagers", bytes.NewReader(body))
	req = withAccount(req, "acct-1")
	rec := httptest.NewRecorder()

	f.handler.Place(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWagerHandler_Get_NotOwner(t *testing.T) {
	f := newWagerHandlerFixture()
	f.wagerRepo.Seed(&domain.Wager{ID: "wager-1", AccountID: "acct-1"})

	req := httptest.NewRequest(http.MethodGet, "/wagers/wager-1", nil)
	req = withAccount(req, "acct-2")
	req = setChiURLParam(req, "id", "wager-1")
	rec := httptest.NewRecorder()

	f.handler.Get(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestWagerHandler_Cancel_Refunds(t *testing.T) {
	f := newWagerHandlerFixture()
	f.wagerRepo.Seed(&domain.Wager{
		ID:        "wager-1",
		AccountID: "acct-1",
		MatchID:   "match-1",
		Stake:     50_00,
		Status:    domain.WagerPending,
	})

	req := httptest.NewRequest(http.MethodPost, "/wagers/wager-1/cancel", nil)
	req = withAccount(req, "acct-1")
	req = setChiURLParam(req, "id", "wager-1")
	rec := httptest.NewRecorder()

	f.handler.Cancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.WagerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.WagerCancelled) {
		t.Fatalf("expected cancelled wager, got %+v", resp)
	}
}

func TestWagerHandler_List_FiltersByStatus(t *testing.T) {
	f := newWagerHandlerFixture()
	f.wagerRepo.Seed(&domain.Wager{ID: "wager-1", AccountID: "acct-1", Status: domain.WagerPending})
	f.wagerRepo.Seed(&domain.Wager{ID: "wager-2", AccountID: "acct-1", Status: domain.WagerWon})

	req := httptest.NewRequest(http.MethodGet, "/wagers?status=PENDING", nil)
	req = withAccount(req, "acct-1")
	rec := httptest.NewRecorder()

	f.handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.WagerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "wager-1" {
		t.Fatalf("expected only the pending wager, got %+v", resp)
	}
}
