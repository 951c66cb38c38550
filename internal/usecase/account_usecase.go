package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gowager/internal/domain"
)

// AccountUseCase provisions accounts and exposes account-level reads.
// Identity resolution happens upstream; this layer only ever sees an
// opaque, already-authenticated account id.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledger      *LedgerUseCase
	wagerRepo   WagerRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledger *LedgerUseCase,
	wagerRepo WagerRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledger:      ledger,
		wagerRepo:   wagerRepo,
		idGen:       idGen,
	}
}

// Ensure returns the account for an authenticated id, creating it with the
// starting balance on first access. The starting balance is granted as an
// adjustment entry so the ledger sum reproduces the balance from zero.
func (uc *AccountUseCase) Ensure(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	account = &domain.Account{
		ID:        accountID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.CreateTx(txCtx, tx, account); err != nil {
		// Lost a race with a concurrent first access; the other writer's
		// account is the real one.
		if existing, getErr := uc.accountRepo.GetByID(ctx, accountID); getErr == nil {
			return existing, nil
		}

		return nil, err
	}

	entry, err := uc.ledger.CreditTx(txCtx, tx, accountID, StartingBalance, domain.EntryAdjustment, "starting balance", nil)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	account.Balance = entry.BalanceAfter

	return account, nil
}

// Get retrieves an account by id.
func (uc *AccountUseCase) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, accountID)
}

// DailyBonus credits the fixed daily bonus to an account.
func (uc *AccountUseCase) DailyBonus(ctx context.Context, accountID string) (*domain.LedgerEntry, error) {
	return uc.ledger.Credit(ctx, accountID, DailyBonusAmount, domain.EntryAdjustment, "daily bonus")
}

// Stats returns the account's aggregate betting record.
func (uc *AccountUseCase) Stats(ctx context.Context, accountID string) (*domain.WagerStats, error) {
	return uc.wagerRepo.StatsByAccount(ctx, accountID)
}

// List lists accounts with pagination.
func (uc *AccountUseCase) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accountRepo.List(ctx, limit, offset)
}
