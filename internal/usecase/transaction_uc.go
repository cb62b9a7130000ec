package usecase

import (
	"context"
	"errors"
	"fmt"

	"cleverbank/internal/domain"
	"cleverbank/internal/pub"
	"cleverbank/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionUsecase owns the ledger. Every balance mutation runs in a
// single database transaction: the row lock, the balance update and the
// ledger insert commit or roll back together.
type TransactionUsecase struct {
	transactionRepo repository.TransactionRepository
	accountRepo     repository.AccountRepository
	bankRepo        repository.BankRepository
	documents       *DocumentUsecase
	events          *pub.TransactionEventPublisher
	redisClient     *redis.Client
	log             *zap.Logger
}

// NewTransactionUsecase initializes a new TransactionUsecase
func NewTransactionUsecase(
	transactionRepo repository.TransactionRepository,
	accountRepo repository.AccountRepository,
	bankRepo repository.BankRepository,
	documents *DocumentUsecase,
	events *pub.TransactionEventPublisher,
	redisClient *redis.Client,
	log *zap.Logger,
) *TransactionUsecase {
	return &TransactionUsecase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		bankRepo:        bankRepo,
		documents:       documents,
		events:          events,
		redisClient:     redisClient,
		log:             log,
	}
}

func transactionCacheKey(id int64) string {
	return fmt.Sprintf("transaction:id:%d", id)
}

// ===============================
// Balance mutations
// ===============================

// ReplenishBalance credits the account and appends a REPLENISHMENT
// entry with only the consumer leg set.
func (uc *TransactionUsecase) ReplenishBalance(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.TransactionResponse, error) {
	if amount.IsNegative() {
		return nil, domain.ErrValidation
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.lockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance.Add(amount)
	if err := uc.accountRepo.UpdateBalanceTx(ctx, tx, account.ID, newBalance); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ConsumerID: &account.ID,
		Amount:     amount,
		Type:       domain.TransactionTypeReplenishment,
		Status:     domain.StatusActive,
	}
	if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit replenishment: %w", err)
	}

	uc.afterMutation(ctx, txn)
	return toTransactionResponse(txn), nil
}

// WithdrawBalance debits the account and appends a WITHDRAWAL entry
// with only the supplier leg set. Overdrafts are permitted and logged.
func (uc *TransactionUsecase) WithdrawBalance(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.TransactionResponse, error) {
	if amount.IsNegative() {
		return nil, domain.ErrValidation
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.lockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance.Sub(amount)
	if newBalance.IsNegative() {
		uc.log.Warn("withdrawal overdraws account",
			zap.String("account", account.ID),
			zap.String("balance", newBalance.String()))
	}
	if err := uc.accountRepo.UpdateBalanceTx(ctx, tx, account.ID, newBalance); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		SupplierID: &account.ID,
		Amount:     amount,
		Type:       domain.TransactionTypeWithdrawal,
		Status:     domain.StatusActive,
	}
	if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	uc.afterMutation(ctx, txn)
	return toTransactionResponse(txn), nil
}

// TransferFunds moves money between two accounts, appending exactly one
// TRANSFER entry carrying both legs. Rows are locked in lexical order
// of account ID so two opposing transfers cannot deadlock.
func (uc *TransactionUsecase) TransferFunds(ctx context.Context, supplierID, consumerID string, amount decimal.Decimal) (*domain.TransactionResponse, error) {
	if amount.IsNegative() || supplierID == consumerID {
		return nil, domain.ErrValidation
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	first, second := supplierID, consumerID
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]*domain.Account, 2)
	for _, id := range []string{first, second} {
		account, err := uc.lockAccount(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = account
	}
	supplier, consumer := locked[supplierID], locked[consumerID]

	if err := uc.accountRepo.UpdateBalanceTx(ctx, tx, supplier.ID, supplier.Balance.Sub(amount)); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateBalanceTx(ctx, tx, consumer.ID, consumer.Balance.Add(amount)); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		SupplierID: &supplier.ID,
		ConsumerID: &consumer.ID,
		Amount:     amount,
		Type:       domain.TransactionTypeTransfer,
		Status:     domain.StatusActive,
	}
	if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	uc.afterMutation(ctx, txn)
	return toTransactionResponse(txn), nil
}

func (uc *TransactionUsecase) lockAccount(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Account", id)
		}
		return nil, err
	}
	return account, nil
}

// afterMutation runs the side effects of a committed mutation: cache
// invalidation, the Kafka event and the receipt render.
func (uc *TransactionUsecase) afterMutation(ctx context.Context, txn *domain.Transaction) {
	keys := make([]string, 0, 2)
	if txn.SupplierID != nil {
		keys = append(keys, accountCacheKey(*txn.SupplierID))
	}
	if txn.ConsumerID != nil {
		keys = append(keys, accountCacheKey(*txn.ConsumerID))
	}
	cacheDel(ctx, uc.redisClient, keys...)

	uc.events.PublishCompleted(ctx, txn)
	uc.documents.SaveCheckAsync(uc.buildCheck(ctx, txn))
}

func (uc *TransactionUsecase) buildCheck(ctx context.Context, txn *domain.Transaction) domain.Check {
	check := domain.Check{
		ID:              fmt.Sprint(txn.ID),
		Date:            txn.CreatedAt.Format(dateLayout),
		Time:            txn.CreatedAt.Format(timeLayout),
		TransactionType: string(txn.Type),
		Amount:          txn.Amount.String(),
	}
	if txn.SupplierID != nil {
		check.SupplierAccount = *txn.SupplierID
		check.SupplierBank = uc.bankTitleFor(ctx, *txn.SupplierID)
	}
	if txn.ConsumerID != nil {
		check.ConsumerAccount = *txn.ConsumerID
		check.ConsumerBank = uc.bankTitleFor(ctx, *txn.ConsumerID)
	}
	return check
}

// bankTitleFor is best effort: a lookup failure leaves the bank line
// off the receipt rather than failing the mutation.
func (uc *TransactionUsecase) bankTitleFor(ctx context.Context, accountID string) string {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		uc.log.Warn("failed to resolve account for receipt", zap.String("account", accountID), zap.Error(err))
		return ""
	}
	bank, err := uc.bankRepo.GetByID(ctx, account.BankID)
	if err != nil {
		uc.log.Warn("failed to resolve bank for receipt", zap.Int64("bank", account.BankID), zap.Error(err))
		return ""
	}
	return bank.Title
}

// ===============================
// CRUD
// ===============================

// Save appends a ledger entry as-is, without touching balances. Used
// for importing externally settled entries; the balance-mutating paths
// are ReplenishBalance, WithdrawBalance and TransferFunds.
func (uc *TransactionUsecase) Save(ctx context.Context, req *domain.TransactionRequest) (*domain.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, leg := range []*string{req.SupplierID, req.ConsumerID} {
		if leg == nil {
			continue
		}
		if _, err := uc.accountRepo.GetByIDTx(ctx, tx, *leg); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewNotFoundError("Account", *leg)
			}
			return nil, err
		}
	}

	txn := &domain.Transaction{
		SupplierID: req.SupplierID,
		ConsumerID: req.ConsumerID,
		Amount:     req.Amount,
		Type:       req.Type,
		Status:     domain.StatusActive,
	}
	if err := uc.transactionRepo.CreateTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return toTransactionResponse(txn), nil
}

func (uc *TransactionUsecase) FindByID(ctx context.Context, id int64) (*domain.TransactionResponse, error) {
	cacheKey := transactionCacheKey(id)

	// --- Check Redis cache first ---
	var cached domain.TransactionResponse
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Transaction", id)
		}
		return nil, err
	}

	resp := toTransactionResponse(txn)
	cacheSet(ctx, uc.redisClient, cacheKey, resp)
	return resp, nil
}

func (uc *TransactionUsecase) FindAll(ctx context.Context, page, size int) (domain.PageResponse[*domain.TransactionResponse], error) {
	txns, err := uc.transactionRepo.List(ctx, size, page*size)
	if err != nil {
		return domain.PageResponse[*domain.TransactionResponse]{}, err
	}

	content := make([]*domain.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		content = append(content, toTransactionResponse(t))
	}
	return domain.NewPageResponse(content, page, size), nil
}

// DeleteByID soft-deletes a ledger entry. Balances are not recomputed:
// the entry stays in the history, only its status flips.
func (uc *TransactionUsecase) DeleteByID(ctx context.Context, id int64) (*domain.TransactionResponse, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Transaction", id)
		}
		return nil, err
	}

	if err := uc.transactionRepo.SetStatus(ctx, id, domain.StatusDeleted); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, transactionCacheKey(id))

	txn.Status = domain.StatusDeleted
	return toTransactionResponse(txn), nil
}
