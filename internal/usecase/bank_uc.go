package usecase

import (
	"context"
	"errors"
	"fmt"

	"cleverbank/internal/domain"
	"cleverbank/internal/repository"

	"github.com/redis/go-redis/v9"
)

type BankUsecase struct {
	bankRepo    repository.BankRepository
	redisClient *redis.Client
}

// NewBankUsecase initializes a new BankUsecase
func NewBankUsecase(bankRepo repository.BankRepository, redisClient *redis.Client) *BankUsecase {
	return &BankUsecase{bankRepo: bankRepo, redisClient: redisClient}
}

func bankCacheKey(id int64) string {
	return fmt.Sprintf("bank:id:%d", id)
}

func (uc *BankUsecase) Save(ctx context.Context, req *domain.BankRequest) (*domain.BankResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bank := &domain.Bank{
		Title:  req.Title,
		Status: domain.StatusActive,
	}
	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, err
	}
	return toBankResponse(bank), nil
}

func (uc *BankUsecase) FindByID(ctx context.Context, id int64) (*domain.BankResponse, error) {
	cacheKey := bankCacheKey(id)

	// --- Check Redis cache first ---
	var cached domain.BankResponse
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Bank", id)
		}
		return nil, err
	}

	resp := toBankResponse(bank)
	cacheSet(ctx, uc.redisClient, cacheKey, resp)
	return resp, nil
}

func (uc *BankUsecase) FindAll(ctx context.Context, page, size int) (domain.PageResponse[*domain.BankResponse], error) {
	banks, err := uc.bankRepo.List(ctx, size, page*size)
	if err != nil {
		return domain.PageResponse[*domain.BankResponse]{}, err
	}

	content := make([]*domain.BankResponse, 0, len(banks))
	for _, b := range banks {
		content = append(content, toBankResponse(b))
	}
	return domain.NewPageResponse(content, page, size), nil
}

func (uc *BankUsecase) Update(ctx context.Context, id int64, req *domain.BankRequest) (*domain.BankResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("Bank", id)
		}
		return nil, err
	}

	bank.Title = req.Title
	if err := uc.bankRepo.Update(ctx, bank); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, bankCacheKey(id))
	return toBankResponse(bank), nil
}

// DeleteByID soft-deletes a bank and returns its last projection.
func (uc *BankUsecase) DeleteByID(ctx context.Context, id int64) (*domain.BankResponse, error) {
	resp, err := uc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.bankRepo.SetStatus(ctx, id, domain.StatusDeleted); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, bankCacheKey(id))
	resp.Status = domain.StatusDeleted
	return resp, nil
}
