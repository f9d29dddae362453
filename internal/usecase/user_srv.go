package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID int64) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID int64, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.users.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User updated", zap.Int64("user_id", user.ID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info("User deleted", zap.Int64("user_id", userID))
	return nil
}
