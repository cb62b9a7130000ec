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

// BankRepository defines persistence operations for banks.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	GetByID(ctx context.Context, id int64) (*domain.Bank, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Bank, error)
	Update(ctx context.Context, bank *domain.Bank) error
	SetStatus(ctx context.Context, id int64, status domain.Status) error
}

type bankRepo struct {
	db *pgxpool.Pool
}

func NewBankRepo(db *pgxpool.Pool) BankRepository {
	return &bankRepo{db: db}
}

const bankSelectQuery = `
	SELECT id, title, status, created_at, updated_at
	FROM banks`

func scanBank(row pgx.Row) (*domain.Bank, error) {
	var b domain.Bank
	err := row.Scan(&b.ID, &b.Title, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bank: %w", err)
	}
	return &b, nil
}

func (r *bankRepo) Create(ctx context.Context, bank *domain.Bank) error {
	now := time.Now()
	bank.CreatedAt = now
	bank.UpdatedAt = now

	err := r.db.QueryRow(ctx, `
		INSERT INTO banks (title, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, bank.Title, bank.Status, now, now).Scan(&bank.ID)
	if err != nil {
		return fmt.Errorf("failed to insert bank: %w", err)
	}
	return nil
}

func (r *bankRepo) GetByID(ctx context.Context, id int64) (*domain.Bank, error) {
	row := r.db.QueryRow(ctx, bankSelectQuery+` WHERE id=$1`, id)
	return scanBank(row)
}

func (r *bankRepo) List(ctx context.Context, limit, offset int) ([]*domain.Bank, error) {
	rows, err := r.db.Query(ctx, bankSelectQuery+` ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	var banks []*domain.Bank
	for rows.Next() {
		var b domain.Bank
		err := rows.Scan(&b.ID, &b.Title, &b.Status, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}
	return banks, nil
}

func (r *bankRepo) Update(ctx context.Context, bank *domain.Bank) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE banks
		SET title = $1, updated_at = $2
		WHERE id = $3
	`, bank.Title, time.Now(), bank.ID)
	if err != nil {
		return fmt.Errorf("failed to update bank: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bankRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE banks
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update bank status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
