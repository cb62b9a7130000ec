package usecase

import (
	"context"
	"sync"
	"time"

	"cleverbank/internal/domain"
	"cleverbank/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memStore is a single in-memory backing store shared by the fake
// repositories so cross-repo effects (balances vs ledger rows) stay
// consistent within a test.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]*domain.User
	banks      map[int64]*domain.Bank
	accounts   map[string]*domain.Account
	txns       []*domain.Transaction
	nextUserID int64
	nextBankID int64
	nextTxnID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*domain.User),
		banks:    make(map[int64]*domain.Bank),
		accounts: make(map[string]*domain.Account),
	}
}

func (s *memStore) addUser(firstName, lastName, email string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := &domain.User{
		ID: s.nextUserID, FirstName: firstName, LastName: lastName, Email: email,
		Status: domain.StatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addBank(title string) *domain.Bank {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBankID++
	b := &domain.Bank{
		ID: s.nextBankID, Title: title,
		Status: domain.StatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.banks[b.ID] = b
	return b
}

func (s *memStore) addAccount(id string, balance decimal.Decimal, userID, bankID int64, createdAt time.Time) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &domain.Account{
		ID: id, Balance: balance, UserID: userID, BankID: bankID,
		Status: domain.StatusActive, CreatedAt: createdAt, UpdatedAt: createdAt,
	}
	s.accounts[id] = a
	return a
}

// fakeTx satisfies pgx.Tx for usecases that only ever call Commit and
// Rollback on it; anything else panics via the embedded nil interface.
type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

// ===============================
// Fake repositories
// ===============================

type fakeAccountRepo struct {
	store *memStore
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

func (r *fakeAccountRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return fakeTx{}, nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAccountRepo) GetByIDTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	clone := *account
	r.store.accounts[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Account
	for _, a := range r.store.accounts {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdateBalanceTx(ctx context.Context, tx pgx.Tx, id string, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Balance = balance
	a.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAccountRepo) SetStatus(ctx context.Context, id string, status domain.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAccountRepo) ReplenishmentSum(ctx context.Context, id string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.store.txns {
		if t.ConsumerID != nil && *t.ConsumerID == id {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (r *fakeAccountRepo) WithdrawalSum(ctx context.Context, id string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.store.txns {
		if t.SupplierID != nil && *t.SupplierID == id {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

type fakeTransactionRepo struct {
	store *memStore
}

var _ repository.TransactionRepository = (*fakeTransactionRepo)(nil)

func (r *fakeTransactionRepo) CreateTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextTxnID++
	txn.ID = r.store.nextTxnID
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	clone := *txn
	r.store.txns = append(r.store.txns, &clone)
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.txns {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTransactionRepo) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range r.store.txns {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range r.store.txns {
		if t.CreatedAt.Before(since) {
			continue
		}
		supplier := t.SupplierID != nil && *t.SupplierID == accountID
		consumer := t.ConsumerID != nil && *t.ConsumerID == accountID
		if supplier || consumer {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.txns {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUserRepo struct {
	store *memStore
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextUserID++
	user.ID = r.store.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.User
	for _, u := range r.store.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = status
	return nil
}

type fakeBankRepo struct {
	store *memStore
}

var _ repository.BankRepository = (*fakeBankRepo)(nil)

func (r *fakeBankRepo) Create(ctx context.Context, bank *domain.Bank) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextBankID++
	bank.ID = r.store.nextBankID
	now := time.Now()
	bank.CreatedAt = now
	bank.UpdatedAt = now
	clone := *bank
	r.store.banks[bank.ID] = &clone
	return nil
}

func (r *fakeBankRepo) GetByID(ctx context.Context, id int64) (*domain.Bank, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.banks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBankRepo) List(ctx context.Context, limit, offset int) ([]*domain.Bank, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Bank
	for _, b := range r.store.banks {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeBankRepo) Update(ctx context.Context, bank *domain.Bank) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.banks[bank.ID]; !ok {
		return domain.ErrNotFound
	}
	bank.UpdatedAt = time.Now()
	clone := *bank
	r.store.banks[bank.ID] = &clone
	return nil
}

func (r *fakeBankRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.banks[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}
