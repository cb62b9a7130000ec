package usecase

import (
	"context"
	"errors"
	"fmt"

	"cleverbank/internal/domain"
	"cleverbank/internal/repository"

	"github.com/redis/go-redis/v9"
)

type UserUsecase struct {
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

// NewUserUsecase initializes a new UserUsecase
func NewUserUsecase(userRepo repository.UserRepository, redisClient *redis.Client) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, redisClient: redisClient}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:id:%d", id)
}

func (uc *UserUsecase) Save(ctx context.Context, req *domain.UserRequest) (*domain.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Status:    domain.StatusActive,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUsecase) FindByID(ctx context.Context, id int64) (*domain.UserResponse, error) {
	cacheKey := userCacheKey(id)

	// --- Check Redis cache first ---
	var cached domain.UserResponse
	if cacheGet(ctx, uc.redisClient, cacheKey, &cached) {
		return &cached, nil
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("User", id)
		}
		return nil, err
	}

	resp := toUserResponse(user)
	cacheSet(ctx, uc.redisClient, cacheKey, resp)
	return resp, nil
}

func (uc *UserUsecase) FindAll(ctx context.Context, page, size int) (domain.PageResponse[*domain.UserResponse], error) {
	users, err := uc.userRepo.List(ctx, size, page*size)
	if err != nil {
		return domain.PageResponse[*domain.UserResponse]{}, err
	}

	content := make([]*domain.UserResponse, 0, len(users))
	for _, u := range users {
		content = append(content, toUserResponse(u))
	}
	return domain.NewPageResponse(content, page, size), nil
}

func (uc *UserUsecase) Update(ctx context.Context, id int64, req *domain.UserRequest) (*domain.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("User", id)
		}
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, userCacheKey(id))
	return uc.FindByID(ctx, id)
}

// DeleteByID soft-deletes a user and returns its last projection.
func (uc *UserUsecase) DeleteByID(ctx context.Context, id int64) (*domain.UserResponse, error) {
	resp, err := uc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.SetStatus(ctx, id, domain.StatusDeleted); err != nil {
		return nil, err
	}
	cacheDel(ctx, uc.redisClient, userCacheKey(id))
	resp.Status = domain.StatusDeleted
	return resp, nil
}
