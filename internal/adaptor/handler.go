package adaptor

import (
	"cinema-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}
