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

type AuthService interface {
	Register(ctx context.Context, ident utils.Identity, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, ident utils.Identity, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	role := entity.UserRole(req.Role)
	if role == "" {
		role = entity.RoleCustomer
	}

	// 2. Bootstrap gate: registration stays open before the first account
	// exists; after that, closing it hands account creation to managers.
	if !s.config.Auth.OpenRegistration {
		existing, err := s.repo.User.CountAll(ctx)
		if err != nil {
			s.log.Error("Failed to count users", zap.Error(err))
			return nil, fmt.Errorf("check existing users: %w", err)
		}
		if existing > 0 && !ident.Role().CanManageUsers() {
			s.log.Warn("Registration attempt without manager role",
				zap.String("username", req.Username))
			return nil, entity.ErrForbidden
		}
	}

	// 3. Check username first, then email: username conflicts win when a
	// request collides on both.
	existingUser, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existingUser != nil {
		return nil, entity.ErrDuplicateUsername
	}

	existingUser, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, entity.ErrDuplicateEmail
	}

	// 4. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// 5. Save user; the unique constraints catch races past the checks above
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown user and wrong password collapse into one failure so callers
	// cannot probe which usernames exist.
	if user == nil {
		s.log.Warn("Login for unknown username", zap.String("username", req.Username))
		return nil, entity.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login with wrong password", zap.Int64("user_id", user.ID))
		return nil, entity.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}
