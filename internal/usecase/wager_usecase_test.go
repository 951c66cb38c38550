package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/gowager/internal/domain"
	"github.com/iho/gowager/internal/usecase"
	"github.com/iho/gowager/internal/usecase/mocks"
)

type wagerFixture struct {
	uc           *usecase.WagerUseCase
	accountRepo  *mocks.MockAccountRepository
	entryRepo    *mocks.MockEntryRepository
	matchRepo    *mocks.MockMatchRepository
	wagerRepo    *mocks.MockWagerRepository
	snapshotRepo *mocks.MockSnapshotRepository
	outboxRepo   *mocks.MockOutboxRepository
}

func newWagerFixture(maxExposure int64) *wagerFixture {
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
	uc := usecase.NewWagerUseCase(txManager, matchRepo, wagerRepo, outboxRepo, ledger, prices, idGen, nil, nil, maxExposure)

	return &wagerFixture{
		uc:           uc,
		accountRepo:  accountRepo,
		entryRepo:    entryRepo,
		matchRepo:    matchRepo,
		wagerRepo:    wagerRepo,
		snapshotRepo: snapshotRepo,
		outboxRepo:   outboxRepo,
	}
}

func (f *wagerFixture) seed(matchStatus domain.MatchStatus, wageringOpen bool) {
	f.accountRepo.Seed(&domain.Account{ID: "user-1", Balance: 10_000_00})
	f.matchRepo.Seed(&domain.Match{
		ID:            "match-1",
		CompetitorAID: "comp-a",
		CompetitorBID: "comp-b",
		Status:        matchStatus,
		WageringOpen:  wageringOpen,
	})
	_ = f.snapshotRepo.Create(context.Background(), &mocks.MockTransaction{}, &domain.PriceSnapshot{
		ID:      "snap-1",
		MatchID: "match-1",
		Market:  domain.MarketMoneyline,
		PriceA:  -111,
		PriceB:  -111,
	})
}

func placeInput(stake int64) usecase.PlaceWagerInput {
	return usecase.PlaceWagerInput{
		AccountID: "user-1",
		MatchID:   "match-1",
		Market:    domain.MarketMoneyline,
		Side:      domain.SideA,
		Stake:     stake,
	}
}

func TestWagerUseCase_PlaceWager(t *testing.T) {
	f := newWagerFixture(0)
	f.seed(domain.MatchScheduled, true)

	wager, err := f.uc.PlaceWager(context.Background(), placeInput(50_00))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wager.Price != -111 {
		t.Errorf("expected locked price -111, got %d", wager.Price)
	}
	if wager.PotentialPayout != 95_04 {
		t.Errorf("expected potential payout 9504, got %d", wager.PotentialPayout)
	}
	if wager.Status != domain.WagerPending {
		t.Errorf("expected pending wager, got %s", wager.Status)
	}

	account, _ := f.accountRepo.GetByID(context.Background(), "user-1")
	if account.Balance != 9_950_00 {
		t.Errorf("expected stake debited, balance %d", account.Balance)
	}

	snapshots := f.snapshotRepo.Snapshots()
	if len(snapshots) != 2 {
		t.Fatalf("expected a new snapshot, got %d", len(snapshots))
	}
	if snapshots[1].VolumeA != 50_00 {
		t.Errorf("expected stake in side A volume, got %d", snapshots[1].VolumeA)
	}

	events := f.outboxRepo.Events()
	if len(events) != 2 {
		t.Fatalf("expected wager and price events, got %d", len(events))
	}
	if events[0].EventType != domain.EventTypeWagerPlaced || events[0].Topic != domain.TopicUser("user-1") {
		t.Errorf("unexpected first event %s on %s", events[0].EventType, events[0].Topic)
	}
	if events[1].EventType != domain.EventTypePriceUpdate || events[1].Topic != domain.TopicMatch("match-1") {
		t.Errorf("unexpected second event %s on %s", events[1].EventType, events[1].Topic)
	}
}

func TestWagerUseCase_PlaceWager_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		matchStatus domain.MatchStatus
		open        bool
		input       usecase.PlaceWagerInput
		maxExposure int64
		expectedErr error
	}{
		{
			name:        "zero stake",
			matchStatus: domain.MatchScheduled,
			open:        true,
			input:       placeInput(0),
			expectedErr: domain.ErrInvalidStake,
		},
		{
			name:        "unsupported market",
			matchStatus: domain.MatchScheduled,
			open:        true,
			input: usecase.PlaceWagerInput{
				AccountID: "user-1", MatchID: "match-1",
				Market: domain.MarketType("SPREAD"), Side: domain.SideA, Stake: 10_00,
			},
			expectedErr: domain.ErrUnsupportedMarket,
		},
		{
			name:        "invalid side",
			matchStatus: domain.MatchScheduled,
			open:        true,
			input: usecase.PlaceWagerInput{
				AccountID: "user-1", MatchID: "match-1",
				Market: domain.MarketMoneyline, Side: domain.Side("DRAW"), Stake: 10_00,
			},
			expectedErr: domain.ErrInvalidSide,
		},
		{
			name:        "match live",
			matchStatus: domain.MatchLive,
			open:        false,
			input:       placeInput(10_00),
			expectedErr: domain.ErrWageringClosed,
		},
		{
			name:        "wagering paused",
			matchStatus: domain.MatchScheduled,
			open:        false,
			input:       placeInput(10_00),
			expectedErr: domain.ErrWageringClosed,
		},
		{
			name:        "stake above balance",
			matchStatus: domain.MatchScheduled,
			open:        true,
			input:       placeInput(20_000_00),
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:        "exposure cap reached",
			matchStatus: domain.MatchScheduled,
			open:        true,
			input:       placeInput(50_00),
			maxExposure: 40_00,
			expectedErr: domain.ErrExposureCapReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWagerFixture(tt.maxExposure)
			f.seed(tt.matchStatus, tt.open)

			_, err := f.uc.PlaceWager(context.Background(), tt.input)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}

			// A rejected wager leaves no trace anywhere.
			if len(f.entryRepo.Entries()) != 0 {
				t.Error("rejected wager must not write ledger entries")
			}
			if len(f.snapshotRepo.Snapshots()) != 1 {
				t.Error("rejected wager must not move the price")
			}
			if len(f.outboxRepo.Events()) != 0 {
				t.Error("rejected wager must not emit events")
			}
		})
	}
}

func TestWagerUseCase_CancelWager(t *testing.T) {
	f := newWagerFixture(0)
	f.seed(domain.MatchScheduled, true)
	f.wagerRepo.Seed(&domain.Wager{
		ID:        "wager-1",
		AccountID: "user-1",
		MatchID:   "match-1",
		Stake:     50_00,
		Status:    domain.WagerPending,
	})

	wager, err := f.uc.CancelWager(context.Background(), "user-1", "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wager.Status != domain.WagerCancelled {
		t.Errorf("expected cancelled wager, got %s", wager.Status)
	}
	if wager.ActualPayout == nil || *wager.ActualPayout != 50_00 {
		t.Error("expected refund recorded as actual payout")
	}

	account, _ := f.accountRepo.GetByID(context.Background(), "user-1")
	if account.Balance != 10_050_00 {
		t.Errorf("expected stake refunded, balance %d", account.Balance)
	}

	entries := f.entryRepo.Entries()
	if len(entries) != 1 || entries[0].Category != domain.EntryWagerRefund {
		t.Fatalf("expected one refund entry, got %+v", entries)
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeWagerCancelled {
		t.Fatalf("expected wager cancelled event, got %+v", events)
	}
}

func TestWagerUseCase_CancelWager_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		accountID   string
		wagerStatus domain.WagerStatus
		matchStatus domain.MatchStatus
		expectedErr error
	}{
		{
			name:        "not the owner",
			accountID:   "user-2",
			wagerStatus: domain.WagerPending,
			matchStatus: domain.MatchScheduled,
			expectedErr: domain.ErrNotWagerOwner,
		},
		{
			name:        "already settled",
			accountID:   "user-1",
			wagerStatus: domain.WagerWon,
			matchStatus: domain.MatchScheduled,
			expectedErr: domain.ErrWagerNotPending,
		},
		{
			name:        "match already live",
			accountID:   "user-1",
			wagerStatus: domain.WagerPending,
			matchStatus: domain.MatchLive,
			expectedErr: domain.ErrInvalidMatchState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWagerFixture(0)
			f.seed(tt.matchStatus, tt.matchStatus == domain.MatchScheduled)
			f.wagerRepo.Seed(&domain.Wager{
				ID:        "wager-1",
				AccountID: "user-1",
				MatchID:   "match-1",
				Stake:     50_00,
				Status:    tt.wagerStatus,
				PlacedAt:  time.Now(),
			})

			_, err := f.uc.CancelWager(context.Background(), tt.accountID, "wager-1")
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
			if len(f.entryRepo.Entries()) != 0 {
				t.Error("rejected cancel must not touch the ledger")
			}
		})
	}
}

func TestWagerUseCase_Get_OwnerOnly(t *testing.T) {
	f := newWagerFixture(0)
	f.wagerRepo.Seed(&domain.Wager{ID: "wager-1", AccountID: "user-1"})

	if _, err := f.uc.Get(context.Background(), "user-1", "wager-1"); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := f.uc.Get(context.Background(), "user-2", "wager-1"); !errors.Is(err, domain.ErrNotWagerOwner) {
		t.Fatalf("expected ErrNotWagerOwner, got %v", err)
	}
}
