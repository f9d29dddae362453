package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type MovieResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Genre           *string   `json:"genre,omitempty"`
	ReleaseDate     *string   `json:"release_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	return MovieResponse{
		ID:              movie.ID,
		Title:           movie.Title,
		Description:     movie.Description,
		DurationMinutes: movie.DurationMinutes,
		Genre:           movie.Genre,
		ReleaseDate:     releaseDate,
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}
}
