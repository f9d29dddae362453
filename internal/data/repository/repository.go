package repository

import (
	"cinema-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Showtime: NewShowtimeRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}
