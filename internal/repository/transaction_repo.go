package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleverbank/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository defines persistence operations for the ledger.
// Inserts happen only inside the caller's transaction so a balance
// update and its ledger row commit or roll back together.
type TransactionRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error)

	// ListByAccountSince fetches rows touching the account on either
	// leg with a creation date at or after the given start date.
	ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.Transaction, error)

	SetStatus(ctx context.Context, id int64, status domain.Status) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

const transactionSelectQuery = `
	SELECT id, supplier_id, consumer_id, amount, transaction_type, status, created_at, updated_at
	FROM transactions`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.SupplierID, &t.ConsumerID, &t.Amount, &t.Type, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return &t, nil
}

func scanTransactionRows(rows pgx.Rows) ([]*domain.Transaction, error) {
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(&t.ID, &t.SupplierID, &t.ConsumerID, &t.Amount, &t.Type, &t.Status, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *transactionRepo) CreateTx(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (supplier_id, consumer_id, amount, transaction_type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, txn.SupplierID, txn.ConsumerID, txn.Amount, txn.Type, txn.Status, now, now).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *transactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, transactionSelectQuery+` WHERE id=$1`, id)
	return scanTransaction(row)
}

func (r *transactionRepo) List(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, transactionSelectQuery+` ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return scanTransactionRows(rows)
}

func (r *transactionRepo) ListByAccountSince(ctx context.Context, accountID string, since time.Time) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, transactionSelectQuery+`
		WHERE created_at >= $2 AND (supplier_id = $1 OR consumer_id = $1)
		ORDER BY created_at ASC
	`, accountID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by account: %w", err)
	}
	return scanTransactionRows(rows)
}

func (r *transactionRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
