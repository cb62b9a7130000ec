package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeReplenishment TransactionType = "REPLENISHMENT"
	TransactionTypeWithdrawal    TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer      TransactionType = "TRANSFER"
)

// Transaction is a single ledger entry. The ledger is append-only:
// rows are created once per balance mutation and never updated, only
// the status flag flips on soft delete.
type Transaction struct {
	ID         int64           `json:"id"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	ConsumerID *string         `json:"consumer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TransactionRequest is the inbound shape for appending a ledger entry.
// Exactly one leg is set for REPLENISHMENT/WITHDRAWAL, both for TRANSFER.
type TransactionRequest struct {
	SupplierID *string         `json:"supplierId,omitempty"`
	ConsumerID *string         `json:"consumerId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
}

func (r *TransactionRequest) Validate() error {
	if r.Amount.IsNegative() {
		return ErrValidation
	}
	switch r.Type {
	case TransactionTypeReplenishment:
		if r.ConsumerID == nil || r.SupplierID != nil {
			return ErrValidation
		}
	case TransactionTypeWithdrawal:
		if r.SupplierID == nil || r.ConsumerID != nil {
			return ErrValidation
		}
	case TransactionTypeTransfer:
		if r.SupplierID == nil || r.ConsumerID == nil {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	return nil
}

// TransactionResponse is the outbound projection of a ledger entry.
// Amounts and dates are plain strings, ready for JSON serialization.
type TransactionResponse struct {
	ID             int64           `json:"id"`
	SupplierID     string          `json:"supplierId,omitempty"`
	ConsumerID     string          `json:"consumerId,omitempty"`
	Amount         string          `json:"amount"`
	Type           TransactionType `json:"type"`
	Status         Status          `json:"status"`
	CreateDate     string          `json:"createDate"`
	LastUpdateDate string          `json:"lastUpdateDate"`
}
