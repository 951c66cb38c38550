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

func newLedgerFixture() (*usecase.LedgerUseCase, *mocks.MockAccountRepository, *mocks.MockEntryRepository) {
	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	ledger := usecase.NewLedgerUseCase(
		mocks.NewMockTransactionManager(),
		accountRepo,
		entryRepo,
		mocks.NewMockIDGenerator(),
	)

	return ledger, accountRepo, entryRepo
}

func TestLedgerUseCase_DebitTx(t *testing.T) {
	tests := []struct {
		name        string
		balance     int64
		amount      int64
		category    domain.EntryCategory
		expectedErr error
	}{
		{
			name:     "successful debit",
			balance:  100_00,
			amount:   40_00,
			category: domain.EntryWagerPlaced,
		},
		{
			name:     "debit to exactly zero",
			balance:  40_00,
			amount:   40_00,
			category: domain.EntryWagerPlaced,
		},
		{
			name:        "insufficient funds",
			balance:     30_00,
			amount:      40_00,
			category:    domain.EntryWagerPlaced,
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:        "zero amount rejected",
			balance:     100_00,
			amount:      0,
			category:    domain.EntryWagerPlaced,
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount rejected",
			balance:     100_00,
			amount:      -10,
			category:    domain.EntryWagerPlaced,
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "unknown category rejected",
			balance:     100_00,
			amount:      10_00,
			category:    domain.EntryCategory("BOGUS"),
			expectedErr: domain.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, accountRepo, entryRepo := newLedgerFixture()
			accountRepo.Seed(&domain.Account{ID: "acc-1", Balance: tt.balance})

			entry, err := ledger.DebitTx(context.Background(), &mocks.MockTransaction{}, "acc-1", tt.amount, tt.category, "test", nil)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				if len(entryRepo.Entries()) != 0 {
					t.Fatal("failed debit must not write entries")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Amount != -tt.amount {
				t.Errorf("expected entry amount %d, got %d", -tt.amount, entry.Amount)
			}
			if entry.BalanceBefore != tt.balance {
				t.Errorf("expected balance before %d, got %d", tt.balance, entry.BalanceBefore)
			}
			if entry.BalanceAfter != tt.balance-tt.amount {
				t.Errorf("expected balance after %d, got %d", tt.balance-tt.amount, entry.BalanceAfter)
			}

			account, _ := accountRepo.GetByID(context.Background(), "acc-1")
			if account.Balance != tt.balance-tt.amount {
				t.Errorf("expected account balance %d, got %d", tt.balance-tt.amount, account.Balance)
			}
		})
	}
}

func TestLedgerUseCase_CreditTx(t *testing.T) {
	ledger, accountRepo, _ := newLedgerFixture()
	accountRepo.Seed(&domain.Account{ID: "acc-1", Balance: 10_00})

	entry, err := ledger.CreditTx(context.Background(), &mocks.MockTransaction{}, "acc-1", 95_04, domain.EntryWagerWon, "wager won", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Amount != 95_04 {
		t.Errorf("expected entry amount %d, got %d", 95_04, entry.Amount)
	}
	if entry.BalanceAfter != 105_04 {
		t.Errorf("expected balance after %d, got %d", 105_04, entry.BalanceAfter)
	}
}

func TestLedgerUseCase_CreditTx_UnknownAccount(t *testing.T) {
	ledger, _, _ := newLedgerFixture()

	_, err := ledger.CreditTx(context.Background(), &mocks.MockTransaction{}, "missing", 10_00, domain.EntryAdjustment, "bonus", nil)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerUseCase_Reconcile(t *testing.T) {
	tests := []struct {
		name       string
		balance    int64
		entrySum   int64
		reconciled bool
	}{
		{name: "balanced", balance: 70_00, entrySum: 70_00, reconciled: true},
		{name: "drift detected", balance: 70_00, entrySum: 65_00, reconciled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, accountRepo, entryRepo := newLedgerFixture()
			accountRepo.Seed(&domain.Account{ID: "acc-1", Balance: tt.balance})
			entryRepo.SumByAccountFunc = func(ctx context.Context, accountID string) (int64, error) {
				return tt.entrySum, nil
			}

			result, err := ledger.Reconcile(context.Background(), "acc-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsReconciled != tt.reconciled {
				t.Errorf("expected reconciled=%v, got %v", tt.reconciled, result.IsReconciled)
			}
			if result.Difference != tt.balance-tt.entrySum {
				t.Errorf("expected difference %d, got %d", tt.balance-tt.entrySum, result.Difference)
			}
		})
	}
}

func TestLedgerUseCase_Position(t *testing.T) {
	ledger, _, entryRepo := newLedgerFixture()
	entryRepo.MatchFlowsFunc = func(ctx context.Context, matchID string) (int64, int64, error) {
		return 300_00, 190_08, nil
	}

	position, err := ledger.Position(context.Background(), "match-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if position.HouseNet != 109_92 {
		t.Errorf("expected house net %d, got %d", 109_92, position.HouseNet)
	}
}

func TestLedgerUseCase_Credit_OwnTransaction(t *testing.T) {
	ledger, accountRepo, _ := newLedgerFixture()
	accountRepo.Seed(&domain.Account{ID: "acc-1", Balance: 0, UpdatedAt: time.Now()})

	entry, err := ledger.Credit(context.Background(), "acc-1", 100_00, domain.EntryAdjustment, "daily bonus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.BalanceAfter != 100_00 {
		t.Errorf("expected balance after %d, got %d", 100_00, entry.BalanceAfter)
	}
}
