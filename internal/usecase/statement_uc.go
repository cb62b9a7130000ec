package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleverbank/internal/domain"
	"cleverbank/internal/repository"

	"github.com/redis/go-redis/v9"
)

// StatementUsecase builds the human-readable projections of an
// account's history: the per-transaction account record and the
// aggregate money statement. Each successful read also kicks off a PDF
// render in the background.
type StatementUsecase struct {
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	bankRepo        repository.BankRepository
	documents       *DocumentUsecase
	redisClient     *redis.Client
}

// NewStatementUsecase initializes a new StatementUsecase
func NewStatementUsecase(
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	bankRepo repository.BankRepository,
	documents *DocumentUsecase,
	redisClient *redis.Client,
) *StatementUsecase {
	return &StatementUsecase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		bankRepo:        bankRepo,
		documents:       documents,
		redisClient:     redisClient,
	}
}

// GetAccountRecord lists every transaction touching the account within
// the period, newest last, each line formatted for display. Outgoing
// amounts carry a leading minus.
func (uc *StatementUsecase) GetAccountRecord(ctx context.Context, accountID string, period domain.StatementPeriod) (*domain.AccountRecord, error) {
	cacheKey := fmt.Sprintf("record:account:%s:%s", accountID, period)

	// --- Check Redis cache first ---
	var cached domain.AccountRecord
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	account, user, bank, err := uc.loadAccountContext(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	since := periodStart(account, period, now)

	txns, err := uc.transactionRepo.ListByAccountSince(ctx, account.ID, since)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.TransactionShort, 0, len(txns))
	for _, t := range txns {
		label := string(t.Type)
		if t.Type == domain.TransactionTypeTransfer {
			if t.SupplierID != nil && *t.SupplierID == account.ID {
				label += " to " + derefOrEmpty(t.ConsumerID)
			} else {
				label += " from " + derefOrEmpty(t.SupplierID)
			}
		}

		amount := t.Amount.String()
		outgoing := t.Type == domain.TransactionTypeWithdrawal ||
			(t.Type == domain.TransactionTypeTransfer && t.SupplierID != nil && *t.SupplierID == account.ID)
		if outgoing {
			amount = "-" + amount
		}

		lines = append(lines, domain.TransactionShort{
			Date:   t.CreatedAt.Format(dateLayout),
			Type:   label,
			Amount: amount,
		})
	}

	record := &domain.AccountRecord{
		ID:                account.ID,
		Bank:              bank.Title,
		Client:            user.FullName(),
		Account:           account.ID,
		AccountCreateDate: account.CreatedAt.Format(dateLayout),
		Period:            formatPeriod(since, now),
		CreateDateTime:    formatCreateDateTime(now),
		Balance:           account.Balance.String(),
		Transactions:      lines,
	}

	cacheSetTTL(ctx, uc.redisClient, cacheKey, record, statementTTL)
	uc.documents.SaveAccountRecordAsync(*record)
	return record, nil
}

// GetStatement sums the full history of the account: total credited as
// replenishment, total debited as withdrawal. The withdrawal total is
// rendered with a leading minus, so an empty history reads "-0".
func (uc *StatementUsecase) GetStatement(ctx context.Context, accountID string) (*domain.Statement, error) {
	cacheKey := fmt.Sprintf("statement:account:%s", accountID)

	// --- Check Redis cache first ---
	var cached domain.Statement
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	account, user, bank, err := uc.loadAccountContext(ctx, accountID)
	if err != nil {
		return nil, err
	}

	replenishment, err := uc.accountRepo.ReplenishmentSum(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	withdrawal, err := uc.accountRepo.WithdrawalSum(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	st := &domain.Statement{
		ID:                account.ID,
		Bank:              bank.Title,
		Client:            user.FullName(),
		Account:           account.ID,
		AccountCreateDate: account.CreatedAt.Format(dateLayout),
		Period:            formatPeriod(account.CreatedAt, now),
		CreateDateTime:    formatCreateDateTime(now),
		Balance:           account.Balance.String(),
		Replenishment:     replenishment.String(),
		Withdrawal:        "-" + withdrawal.String(),
	}

	cacheSetTTL(ctx, uc.redisClient, cacheKey, st, statementTTL)
	uc.documents.SaveStatementAsync(*st)
	return st, nil
}

func (uc *StatementUsecase) loadAccountContext(ctx context.Context, accountID string) (*domain.Account, *domain.User, *domain.Bank, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.NewNotFoundError("Account", accountID)
		}
		return nil, nil, nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, account.UserID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load account owner: %w", err)
	}
	bank, err := uc.bankRepo.GetByID(ctx, account.BankID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load account bank: %w", err)
	}
	return account, user, bank, nil
}

func periodStart(account *domain.Account, period domain.StatementPeriod, now time.Time) time.Time {
	switch period {
	case domain.PeriodMonth:
		return now.AddDate(0, -1, 0)
	case domain.PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return account.CreatedAt
	}
}

func formatPeriod(since, now time.Time) string {
	return since.Format(dateLayout) + " - " + now.Format(dateLayout)
}

func formatCreateDateTime(now time.Time) string {
	return now.Format(dateLayout) + ", " + now.Format(timeLayout)
}
