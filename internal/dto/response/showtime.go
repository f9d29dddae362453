package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type ShowtimeResponse struct {
	ID             int64     `json:"id"`
	MovieID        int64     `json:"movie_id"`
	Theater        string    `json:"theater"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	AvailableSeats int       `json:"available_seats"`
	Price          int64     `json:"price"`
	CreatedAt      time.Time `json:"created_at"`
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:             showtime.ID,
		MovieID:        showtime.MovieID,
		Theater:        showtime.Theater,
		StartTime:      showtime.StartTime,
		EndTime:        showtime.EndTime,
		AvailableSeats: showtime.AvailableSeats,
		Price:          showtime.Price,
		CreatedAt:      showtime.CreatedAt,
	}
}
