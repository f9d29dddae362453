package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Showtime, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, theater, start_time, end_time, available_seats, price, created_at`

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater, start_time, end_time, available_seats, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.AvailableSeats,
		showtime.Price,
		showtime.CreatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.String("theater", showtime.Theater),
		)
		return fmt.Errorf("create showtime for movie %d: %w", showtime.MovieID, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.AvailableSeats,
		&showtime.Price,
		&showtime.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		ORDER BY start_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get showtimes",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all showtimes limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.Theater,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.AvailableSeats,
			&showtime.Price,
			&showtime.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM showtimes`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count all showtimes: %w", err)
	}

	return count, nil
}

// Update writes the schedule fields. available_seats is deliberately not
// part of the statement: only the booking repository moves the capacity
// counter.
func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater = $3, start_time = $4, end_time = $5, price = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.Theater,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrShowtimeNotFound
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return fmt.Errorf("delete showtime %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrShowtimeNotFound
	}

	r.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}
