package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if movie == nil {
		return nil, entity.ErrMovieNotFound
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		ReleaseDate:     req.ReleaseDate,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if movie == nil {
		return nil, entity.ErrMovieNotFound
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = req.ReleaseDate
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", movie.ID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", movieID))
	return nil
}
