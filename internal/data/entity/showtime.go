package entity

import (
	"time"
)

// Showtime is a scheduled screening. AvailableSeats is the remaining
// capacity counter; only the booking repository may change it.
type Showtime struct {
	BaseSimple
	MovieID        int64     `db:"movie_id"`
	Theater        string    `db:"theater"`
	StartTime      time.Time `db:"start_time"`
	EndTime        time.Time `db:"end_time"`
	AvailableSeats int       `db:"available_seats"`
	Price          int64     `db:"price"` // cents
}
