package request

import "time"

type ShowtimeRequest struct {
	MovieID        int64     `json:"movie_id" validate:"required,gt=0"`
	Theater        string    `json:"theater" validate:"required,max=100"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	AvailableSeats int       `json:"available_seats" validate:"required,gt=0"`
	Price          int64     `json:"price" validate:"required,gt=0"` // cents
}

// UpdateShowtimeRequest has no available_seats field: capacity is owned by
// the booking flow and cannot be edited directly.
type UpdateShowtimeRequest struct {
	MovieID   *int64     `json:"movie_id,omitempty" validate:"omitempty,gt=0"`
	Theater   *string    `json:"theater,omitempty" validate:"omitempty,max=100"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Price     *int64     `json:"price,omitempty" validate:"omitempty,gt=0"`
}
