package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation against a showtime. TotalPrice is frozen at
// creation time and never recomputed from the showtime's current price.
type Booking struct {
	ID          int64         `db:"id"`
	UserID      int64         `db:"user_id"`
	ShowtimeID  int64         `db:"showtime_id"`
	SeatsBooked int           `db:"seats_booked"`
	TotalPrice  int64         `db:"total_price"` // cents
	Status      BookingStatus `db:"status"`
	BookingTime time.Time     `db:"booking_time"`
}
