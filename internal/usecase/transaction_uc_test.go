package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleverbank/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTransactionEnv(t *testing.T) (*memStore, *TransactionUsecase) {
	t.Helper()
	store := newMemStore()
	uc := NewTransactionUsecase(
		&fakeTransactionRepo{store},
		&fakeAccountRepo{store},
		&fakeBankRepo{store},
		nil, nil, nil,
		zap.NewNop(),
	)
	return store, uc
}

func seedAccount(store *memStore, id string, balance int64) {
	user := store.addUser("Ivan", "Ivanov", "ivan@example.com")
	bank := store.addBank("CleverBank")
	store.addAccount(id, decimal.NewFromInt(balance), user.ID, bank.ID, time.Now().AddDate(0, -2, 0))
}

func TestReplenishBalance(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	resp, err := uc.ReplenishBalance(context.Background(), "ACC-1", decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeReplenishment, resp.Type)
	assert.Equal(t, "50", resp.Amount)
	assert.Equal(t, "ACC-1", resp.ConsumerID)
	assert.Empty(t, resp.SupplierID)

	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(150)))
	require.Len(t, store.txns, 1)
	assert.Nil(t, store.txns[0].SupplierID)
}

func TestWithdrawBalance(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	resp, err := uc.WithdrawBalance(context.Background(), "ACC-1", decimal.NewFromInt(30))
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeWithdrawal, resp.Type)
	assert.Equal(t, "ACC-1", resp.SupplierID)
	assert.Empty(t, resp.ConsumerID)

	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(70)))
	require.Len(t, store.txns, 1)
	assert.Nil(t, store.txns[0].ConsumerID)
}

func TestWithdrawBalanceAllowsOverdraft(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 10)

	_, err := uc.WithdrawBalance(context.Background(), "ACC-1", decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(-15)))
}

func TestTransferFunds(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)
	seedAccount(store, "ACC-2", 5)

	resp, err := uc.TransferFunds(context.Background(), "ACC-1", "ACC-2", decimal.NewFromInt(40))
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionTypeTransfer, resp.Type)
	assert.Equal(t, "ACC-1", resp.SupplierID)
	assert.Equal(t, "ACC-2", resp.ConsumerID)

	// Money is conserved: one side down by 40, the other up by 40.
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(60)))
	assert.True(t, store.accounts["ACC-2"].Balance.Equal(decimal.NewFromInt(45)))

	// Exactly one ledger row carrying both legs.
	require.Len(t, store.txns, 1)
	assert.NotNil(t, store.txns[0].SupplierID)
	assert.NotNil(t, store.txns[0].ConsumerID)
}

// lockRecordingAccountRepo records the order row locks are requested in.
type lockRecordingAccountRepo struct {
	*fakeAccountRepo
	lockOrder []string
}

func (r *lockRecordingAccountRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.fakeAccountRepo.GetForUpdateTx(ctx, tx, id)
}

// Two opposing transfers must request their row locks in the same
// order, or concurrent transfers can deadlock. Locks go by lexical
// account id, regardless of which side supplies the money.
func TestTransferFundsLockOrderIsDeterministic(t *testing.T) {
	store := newMemStore()
	accountRepo := &lockRecordingAccountRepo{fakeAccountRepo: &fakeAccountRepo{store}}
	uc := NewTransactionUsecase(
		&fakeTransactionRepo{store},
		accountRepo,
		&fakeBankRepo{store},
		nil, nil, nil,
		zap.NewNop(),
	)
	seedAccount(store, "ACC-B", 100)
	seedAccount(store, "ACC-A", 100)
	ctx := context.Background()

	_, err := uc.TransferFunds(ctx, "ACC-B", "ACC-A", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACC-A", "ACC-B"}, accountRepo.lockOrder)

	accountRepo.lockOrder = nil
	_, err = uc.TransferFunds(ctx, "ACC-A", "ACC-B", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"ACC-A", "ACC-B"}, accountRepo.lockOrder)

	// Direction still decides who pays: B paid once, A paid once.
	assert.True(t, store.accounts["ACC-A"].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, store.accounts["ACC-B"].Balance.Equal(decimal.NewFromInt(100)))
}

func TestTransferFundsSameAccount(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	_, err := uc.TransferFunds(context.Background(), "ACC-1", "ACC-1", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.txns)
}

func TestMutationsRejectNegativeAmount(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)
	seedAccount(store, "ACC-2", 100)
	minus := decimal.NewFromInt(-1)

	_, err := uc.ReplenishBalance(context.Background(), "ACC-1", minus)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.WithdrawBalance(context.Background(), "ACC-1", minus)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.TransferFunds(context.Background(), "ACC-1", "ACC-2", minus)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, store.txns)
}

func TestMutationUnknownAccount(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	_, err := uc.ReplenishBalance(context.Background(), "ACC-404", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "Account with ID ACC-404")

	_, err = uc.TransferFunds(context.Background(), "ACC-1", "ACC-404", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A failed mutation leaves no ledger row behind.
	assert.Empty(t, store.txns)
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(100)))
}

// Replenish 50, withdraw 30, transfer 20: the account ends back at its
// starting balance and every step left exactly one ledger row.
func TestMutationSequence(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)
	seedAccount(store, "ACC-2", 0)
	ctx := context.Background()

	_, err := uc.ReplenishBalance(ctx, "ACC-1", decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(150)))

	_, err = uc.WithdrawBalance(ctx, "ACC-1", decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(120)))

	_, err = uc.TransferFunds(ctx, "ACC-1", "ACC-2", decimal.NewFromInt(20))
	require.NoError(t, err)

	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, store.accounts["ACC-2"].Balance.Equal(decimal.NewFromInt(20)))
	assert.Len(t, store.txns, 3)
}

func TestSaveDoesNotTouchBalances(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	supplier := "ACC-1"
	resp, err := uc.Save(context.Background(), &domain.TransactionRequest{
		SupplierID: &supplier,
		Amount:     decimal.NewFromInt(40),
		Type:       domain.TransactionTypeWithdrawal,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	require.Len(t, store.txns, 1)
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(100)))
}

func TestSaveUnknownAccount(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)

	missing := "ACC-404"
	_, err := uc.Save(context.Background(), &domain.TransactionRequest{
		ConsumerID: &missing,
		Amount:     decimal.NewFromInt(40),
		Type:       domain.TransactionTypeReplenishment,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.txns)
}

func TestDeleteTransactionKeepsHistory(t *testing.T) {
	store, uc := newTransactionEnv(t)
	seedAccount(store, "ACC-1", 100)
	ctx := context.Background()

	created, err := uc.ReplenishBalance(ctx, "ACC-1", decimal.NewFromInt(50))
	require.NoError(t, err)

	deleted, err := uc.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, deleted.Status)

	// Soft delete: the row is still there, balances untouched.
	require.Len(t, store.txns, 1)
	assert.Equal(t, domain.StatusDeleted, store.txns[0].Status)
	assert.True(t, store.accounts["ACC-1"].Balance.Equal(decimal.NewFromInt(150)))
}

func TestFindTransactionNotFound(t *testing.T) {
	_, uc := newTransactionEnv(t)

	_, err := uc.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var nfe *domain.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "Transaction", nfe.Entity)
}
