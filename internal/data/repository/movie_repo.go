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

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, duration_minutes, genre, release_date, created_at, updated_at`

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, description, duration_minutes, genre, release_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.Genre,
		movie.ReleaseDate,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&movie.ID)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.DurationMinutes,
		&movie.Genre,
		&movie.ReleaseDate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie by ID %d: %w", id, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all movies limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.DurationMinutes,
			&movie.Genre,
			&movie.ReleaseDate,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count all movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, duration_minutes = $4, genre = $5,
		    release_date = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.DurationMinutes,
		movie.Genre,
		movie.ReleaseDate,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrMovieNotFound
	}

	return nil
}

// Delete removes the movie row only. Showtimes referencing it are left in
// place, matching the no-cascade ownership model.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrMovieNotFound
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}
