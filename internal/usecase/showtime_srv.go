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

type ShowtimeService interface {
	GetShowtimes(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID int64, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID int64) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtimes(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	showtimeResponses := make([]response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		showtimeResponses[i] = response.ShowtimeToResponse(showtime)
	}

	return response.NewPaginatedResponse(showtimeResponses, req.Page, req.PerPage, total), nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID int64) (*response.ShowtimeResponse, error) {
	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime %d: %w", showtimeID, err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	// The referenced movie must exist
	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("check movie %d: %w", req.MovieID, err)
	}
	if movie == nil {
		return nil, entity.ErrMovieNotFound
	}

	showtime := &entity.Showtime{
		BaseSimple: entity.BaseSimple{
			CreatedAt: time.Now(),
		},
		MovieID:        req.MovieID,
		Theater:        req.Theater,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.String("theater", showtime.Theater),
		zap.Int("available_seats", showtime.AvailableSeats))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID int64, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime %d: %w", showtimeID, err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	if req.MovieID != nil {
		movie, err := s.repo.Movie.FindByID(ctx, *req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("check movie %d: %w", *req.MovieID, err)
		}
		if movie == nil {
			return nil, entity.ErrMovieNotFound
		}
		showtime.MovieID = *req.MovieID
	}
	if req.Theater != nil {
		showtime.Theater = *req.Theater
	}
	if req.StartTime != nil {
		showtime.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		showtime.EndTime = *req.EndTime
	}
	if req.Price != nil {
		showtime.Price = *req.Price
	}

	if !showtime.EndTime.After(showtime.StartTime) {
		return nil, fmt.Errorf("%w: EndTime: Must be after StartTime", entity.ErrValidation)
	}

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime updated", zap.Int64("showtime_id", showtime.ID))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID int64) error {
	if err := s.repo.Showtime.Delete(ctx, showtimeID); err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", showtimeID))
	return nil
}
