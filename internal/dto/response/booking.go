package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type BookingResponse struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	ShowtimeID  int64                `json:"showtime_id"`
	SeatsBooked int                  `json:"seats_booked"`
	TotalPrice  int64                `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	BookingTime time.Time            `json:"booking_time"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		SeatsBooked: booking.SeatsBooked,
		TotalPrice:  booking.TotalPrice,
		Status:      booking.Status,
		BookingTime: booking.BookingTime,
	}
}
