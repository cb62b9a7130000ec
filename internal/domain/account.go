package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status marks a row as live or soft-deleted. Rows are never physically
// removed so that the transaction history stays intact.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Account represents a bank account owned by a user at a bank.
// The identifier is the generated account number and is immutable
// after creation. The balance is mutated only by ledger operations.
type Account struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	UserID    int64           `json:"user_id"`
	BankID    int64           `json:"bank_id"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountRequest is the inbound shape for opening an account.
type AccountRequest struct {
	UserID int64 `json:"userId"`
	BankID int64 `json:"bankId"`
}

func (r *AccountRequest) Validate() error {
	if r.UserID <= 0 {
		return ErrValidation
	}
	if r.BankID <= 0 {
		return ErrValidation
	}
	return nil
}

// AccountResponse is the outbound projection of an account.
type AccountResponse struct {
	ID             string `json:"id"`
	Balance        string `json:"balance"`
	UserID         int64  `json:"userId"`
	BankID         int64  `json:"bankId"`
	Status         Status `json:"status"`
	CreateDate     string `json:"createDate"`
	LastUpdateDate string `json:"lastUpdateDate"`
}
