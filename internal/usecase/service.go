package usecase

import (
	"cinema-api/internal/data/repository"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Movie    MovieService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, tokens *utils.TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, tokens, log),
		User:     NewUserService(repo.User, log),
		Movie:    NewMovieService(repo, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, log),
	}
}
