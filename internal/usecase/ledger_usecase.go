package usecase

import (
	"context"
	"time"

	"github.com/iho/gowager/internal/domain"
)

// LedgerUseCase owns all balance mutations. Every debit and credit locks the
// account row, checks the balance, appends an immutable entry and updates the
// balance inside the caller's transaction, so a balance change and the
// business event that caused it are never observable independently.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// DebitTx decreases an account balance inside the caller's transaction.
// Fails with ErrInsufficientFunds before anything is written; the check is
// made against the row-locked balance so concurrent wagers cannot both pass
// on a stale read.
func (uc *LedgerUseCase) DebitTx(
	ctx context.Context,
	tx Transaction,
	accountID string,
	amount int64,
	category domain.EntryCategory,
	note string,
	wagerID *string,
) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyDebit(amount)

	entry := &domain.LedgerEntry{
		ID:            uc.idGen.Generate(),
		AccountID:     accountID,
		Amount:        -amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Category:      category,
		Note:          note,
		WagerID:       wagerID,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, accountID, newBalance, now); err != nil {
		return nil, err
	}

	return entry, nil
}

// CreditTx increases an account balance inside the caller's transaction.
// Credits always succeed; there is no upper bound check.
func (uc *LedgerUseCase) CreditTx(
	ctx context.Context,
	tx Transaction,
	accountID string,
	amount int64,
	category domain.EntryCategory,
	note string,
	wagerID *string,
) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyCredit(amount)

	entry := &domain.LedgerEntry{
		ID:            uc.idGen.Generate(),
		AccountID:     accountID,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Category:      category,
		Note:          note,
		WagerID:       wagerID,
		CreatedAt:     now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, accountID, newBalance, now); err != nil {
		return nil, err
	}

	return entry, nil
}

// Credit applies a standalone credit in its own transaction.
func (uc *LedgerUseCase) Credit(
	ctx context.Context,
	accountID string,
	amount int64,
	category domain.EntryCategory,
	note string,
) (*domain.LedgerEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	entry, err := uc.CreditTx(txCtx, tx, accountID, amount, category, note, nil)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// Balance returns the live balance for an account.
func (uc *LedgerUseCase) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

// Entries lists ledger entries for an account, newest first.
func (uc *LedgerUseCase) Entries(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.entryRepo.ListByAccount(ctx, accountID, limit, offset)
}

// ReconciliationResult reports whether an account's live balance matches
// the sum of its ledger entry deltas.
type ReconciliationResult struct {
	AccountID         string
	RecordedBalance   int64
	CalculatedBalance int64
	Difference        int64
	IsReconciled      bool
	CheckedAt         time.Time
}

// Reconcile recomputes an account balance from its entries and compares it
// with the stored balance. Accounts are seeded with a starting-balance
// adjustment entry, so the entry sum alone must reproduce the balance.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResult{
		AccountID:         accountID,
		RecordedBalance:   account.Balance,
		CalculatedBalance: sum,
		Difference:        account.Balance - sum,
		IsReconciled:      account.Balance == sum,
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// MatchPosition reconstructs the house's net position for a match from the
// ledger alone: total stakes debited minus total payouts credited.
type MatchPosition struct {
	MatchID     string
	TotalStaked int64
	TotalPaid   int64
	HouseNet    int64
}

// Position returns the house net position for a match.
func (uc *LedgerUseCase) Position(ctx context.Context, matchID string) (*MatchPosition, error) {
	staked, paid, err := uc.entryRepo.MatchFlows(ctx, matchID)
	if err != nil {
		return nil, err
	}

	return &MatchPosition{
		MatchID:     matchID,
		TotalStaked: staked,
		TotalPaid:   paid,
		HouseNet:    staked - paid,
	}, nil
}
