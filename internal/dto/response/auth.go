package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type AuthResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	UserID    int64           `json:"user_id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
}

type UserResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UserToResponse never carries the password hash outward.
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func AuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
	}
}
