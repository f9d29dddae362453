package entity

import (
	"time"
)

type Movie struct {
	Base
	Title           string     `db:"title"`
	Description     *string    `db:"description"`
	DurationMinutes int        `db:"duration_minutes"`
	Genre           *string    `db:"genre"`
	ReleaseDate     *time.Time `db:"release_date"`
}
