package domain

import (
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[^@ \t\r\n]+@[^@ \t\r\n]+\.[^@ \t\r\n]+$`)

// User represents a registered bank client.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName renders the client string used on statements.
func (u *User) FullName() string {
	return u.LastName + " " + u.FirstName
}

// UserRequest is the inbound shape for registering or updating a user.
type UserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (r *UserRequest) Validate() error {
	if r.FirstName == "" || len(r.FirstName) > 255 {
		return ErrValidation
	}
	if r.LastName == "" || len(r.LastName) > 255 {
		return ErrValidation
	}
	if r.Email == "" || len(r.Email) > 255 || !emailRegex.MatchString(r.Email) {
		return ErrValidation
	}
	return nil
}

// UserResponse is the outbound projection of a user.
type UserResponse struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Status         Status `json:"status"`
	CreateDate     string `json:"createDate"`
	LastUpdateDate string `json:"lastUpdateDate"`
}
