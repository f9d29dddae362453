package request

import "time"

type MovieRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     *string    `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,gt=0"`
	Genre           *string    `json:"genre,omitempty" validate:"omitempty,max=100"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
}

type UpdateMovieRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string    `json:"description,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Genre           *string    `json:"genre,omitempty" validate:"omitempty,max=100"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
}
