package request

type CreateBookingRequest struct {
	ShowtimeID  int64 `json:"showtime_id" validate:"required,gt=0"`
	SeatsBooked int   `json:"seats_booked" validate:"required,gt=0"`
}

// UpdateBookingRequest exposes status only. seats_booked is frozen after
// creation so the showtime capacity counter stays truthful.
type UpdateBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed"`
}
