package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleverbank/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for accounts.
// Methods with a Tx suffix run inside a caller-owned transaction.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error)

	// GetForUpdateTx locks the account row until the transaction ends,
	// serializing concurrent balance mutations on the same account.
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error)

	Create(ctx context.Context, account *domain.Account) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	UpdateBalanceTx(ctx context.Context, tx pgx.Tx, id string, balance decimal.Decimal) error
	SetStatus(ctx context.Context, id string, status domain.Status) error

	// Aggregate sums over the full transaction history of an account.
	// A history with no matching rows yields zero, not an error.
	ReplenishmentSum(ctx context.Context, id string) (decimal.Decimal, error)
	WithdrawalSum(ctx context.Context, id string) (decimal.Decimal, error)

	// Transaction helper
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepo(db *pgxpool.Pool) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const accountSelectQuery = `
	SELECT id, balance, user_id, bank_id, status, created_at, updated_at
	FROM accounts`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Balance, &a.UserID, &a.BankID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, accountSelectQuery+` WHERE id=$1`, id)
	return scanAccount(row)
}

func (r *accountRepo) GetByIDTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	row := tx.QueryRow(ctx, accountSelectQuery+` WHERE id=$1`, id)
	return scanAccount(row)
}

func (r *accountRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (*domain.Account, error) {
	row := tx.QueryRow(ctx, accountSelectQuery+` WHERE id=$1 FOR UPDATE`, id)
	return scanAccount(row)
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, balance, user_id, bank_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, account.ID, account.Balance, account.UserID, account.BankID, account.Status, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *accountRepo) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, accountSelectQuery+` ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var a domain.Account
		err := rows.Scan(&a.ID, &a.Balance, &a.UserID, &a.BankID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *accountRepo) UpdateBalanceTx(ctx context.Context, tx pgx.Tx, id string, balance decimal.Decimal) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $1, updated_at = $2
		WHERE id = $3
	`, balance, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepo) SetStatus(ctx context.Context, id string, status domain.Status) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepo) ReplenishmentSum(ctx context.Context, id string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE consumer_id = $1
	`, id).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum replenishments: %w", err)
	}
	return sum, nil
}

func (r *accountRepo) WithdrawalSum(ctx context.Context, id string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE supplier_id = $1
	`, id).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum withdrawals: %w", err)
	}
	return sum, nil
}
