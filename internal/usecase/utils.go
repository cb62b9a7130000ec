package usecase

import (
	"context"
	"encoding/json"
	"time"

	"cleverbank/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"

	cacheTTL = 5 * time.Minute

	// statementTTL is short: statements go stale with every mutation.
	statementTTL = time.Minute
)

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cacheGet unmarshals a cached value into dest. Returns false when the
// client is nil, the key is missing or the payload does not parse.
func cacheGet(ctx context.Context, rdb *redis.Client, key string, dest any) bool {
	if rdb == nil {
		return false
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, value any) {
	cacheSetTTL(ctx, rdb, key, value, cacheTTL)
}

func cacheSetTTL(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) {
	if rdb == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		_ = rdb.Set(ctx, key, data, ttl).Err()
	}
}

func cacheDel(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	_ = rdb.Del(ctx, keys...).Err()
}

// ===============================
// Response mappers
// ===============================

func toUserResponse(u *domain.User) *domain.UserResponse {
	return &domain.UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Status:         u.Status,
		CreateDate:     u.CreatedAt.Format(dateLayout),
		LastUpdateDate: u.UpdatedAt.Format(dateLayout),
	}
}

func toBankResponse(b *domain.Bank) *domain.BankResponse {
	return &domain.BankResponse{
		ID:     b.ID,
		Title:  b.Title,
		Status: b.Status,
	}
}

func toAccountResponse(a *domain.Account) *domain.AccountResponse {
	return &domain.AccountResponse{
		ID:             a.ID,
		Balance:        a.Balance.String(),
		UserID:         a.UserID,
		BankID:         a.BankID,
		Status:         a.Status,
		CreateDate:     a.CreatedAt.Format(dateLayout),
		LastUpdateDate: a.UpdatedAt.Format(dateLayout),
	}
}

func toTransactionResponse(t *domain.Transaction) *domain.TransactionResponse {
	return &domain.TransactionResponse{
		ID:             t.ID,
		SupplierID:     derefOrEmpty(t.SupplierID),
		ConsumerID:     derefOrEmpty(t.ConsumerID),
		Amount:         t.Amount.String(),
		Type:           t.Type,
		Status:         t.Status,
		CreateDate:     t.CreatedAt.Format(dateLayout),
		LastUpdateDate: t.UpdatedAt.Format(dateLayout),
	}
}
