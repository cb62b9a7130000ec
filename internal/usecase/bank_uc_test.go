package usecase

import (
	"context"
	"testing"

	"cleverbank/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBankEnv(t *testing.T) (*memStore, *BankUsecase) {
	t.Helper()
	store := newMemStore()
	return store, NewBankUsecase(&fakeBankRepo{store}, nil)
}

func TestSaveBank(t *testing.T) {
	store, uc := newBankEnv(t)

	resp, err := uc.Save(context.Background(), &domain.BankRequest{Title: "CleverBank"})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "CleverBank", resp.Title)
	assert.Contains(t, store.banks, resp.ID)
}

func TestSaveBankEmptyTitle(t *testing.T) {
	_, uc := newBankEnv(t)

	_, err := uc.Save(context.Background(), &domain.BankRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFindBankByID(t *testing.T) {
	store, uc := newBankEnv(t)
	bank := store.addBank("CleverBank")

	resp, err := uc.FindByID(context.Background(), bank.ID)
	require.NoError(t, err)
	assert.Equal(t, "CleverBank", resp.Title)

	_, err = uc.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "Bank with ID 999")
}

func TestUpdateBank(t *testing.T) {
	store, uc := newBankEnv(t)
	bank := store.addBank("CleverBank")

	resp, err := uc.Update(context.Background(), bank.ID, &domain.BankRequest{Title: "OtherBank"})
	require.NoError(t, err)

	assert.Equal(t, "OtherBank", resp.Title)
	assert.Equal(t, "OtherBank", store.banks[bank.ID].Title)
}

func TestDeleteBankIsSoft(t *testing.T) {
	store, uc := newBankEnv(t)
	bank := store.addBank("CleverBank")

	resp, err := uc.DeleteByID(context.Background(), bank.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, resp.Status)

	require.Contains(t, store.banks, bank.ID)
	assert.Equal(t, domain.StatusDeleted, store.banks[bank.ID].Status)
}

func TestBankCacheKey(t *testing.T) {
	assert.Equal(t, "bank:id:3", bankCacheKey(3))
}
