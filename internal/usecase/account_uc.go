package usecase

import (
	"context"
	"errors"
	"fmt"

	"cleverbank/internal/domain"
	"cleverbank/internal/repository"
	"cleverbank/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// accountNumberPrefix goes in front of every generated account number.
const accountNumberPrefix = "CB"

type AccountUsecase struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
	bankRepo    repository.BankRepository
	numberGen   *utils.AccountNumberGenerator
	redisClient *redis.Client
}

// NewAccountUsecase initializes a new AccountUsecase
func NewAccountUsecase(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	bankRepo repository.BankRepository,
	numberGen *utils.AccountNumberGenerator,
	redisClient *redis.Client,
) *AccountUsecase {
	return &AccountUsecase{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		bankRepo:    bankRepo,
		numberGen:   numberGen,
		redisClient: redisClient,
	}
}

func accountCacheKey(id string) string {
	return fmt.Sprintf("account:id:%s", id)
}

// Save opens a new account for an existing user at an existing bank.
// The account number is generated here, never taken from the request.
func (uc *AccountUsecase) Save(ctx context.Context, req *domain.AccountRequest) (*domain.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("User", req.UserID)
		}
		return nil, err
	}
	if _, err := uc.bankRepo.GetByID(ctx, req.BankID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Bank", req.BankID)
		}
		return nil, err
	}

	account := &domain.Account{
		ID:      uc.numberGen.NextPrefixed(accountNumberPrefix),
		Balance: decimal.Zero,
		UserID:  req.UserID,
		BankID:  req.BankID,
		Status:  domain.StatusActive,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func (uc *AccountUsecase) FindByID(ctx context.Context, id string) (*domain.AccountResponse, error) {
	cacheKey := accountCacheKey(id)

	// --- Check Redis cache first ---
	var cached domain.AccountResponse
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Account", id)
		}
		return nil, err
	}

	resp := toAccountResponse(account)
	cacheSet(ctx, uc.redisClient, cacheKey, resp)
	return resp, nil
}

func (uc *AccountUsecase) FindAll(ctx context.Context, page, size int) (domain.PageResponse[*domain.AccountResponse], error) {
	accounts, err := uc.accountRepo.List(ctx, size, page*size)
	if err != nil {
		return domain.PageResponse[*domain.AccountResponse]{}, err
	}

	content := make([]*domain.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		content = append(content, toAccountResponse(a))
	}
	return domain.NewPageResponse(content, page, size), nil
}

// DeleteByID soft-deletes an account. The balance and ledger history
// stay intact.
func (uc *AccountUsecase) DeleteByID(ctx context.Context, id string) (*domain.AccountResponse, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Account", id)
		}
		return nil, err
	}

	if err := uc.accountRepo.SetStatus(ctx, id, domain.StatusDeleted); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, accountCacheKey(id))

	account.Status = domain.StatusDeleted
	return toAccountResponse(account), nil
}
