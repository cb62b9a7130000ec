package domain

import "time"

// Bank represents a bank that accounts are opened at.
type Bank struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BankRequest is the inbound shape for registering or updating a bank.
type BankRequest struct {
	Title string `json:"title"`
}

func (r *BankRequest) Validate() error {
	if r.Title == "" || len(r.Title) > 255 {
		return ErrValidation
	}
	return nil
}

// BankResponse is the outbound projection of a bank.
type BankResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}
