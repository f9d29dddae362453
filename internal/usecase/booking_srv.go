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

type BookingService interface {
	// CreateBooking reserves seats for the authenticated customer.
	CreateBooking(ctx context.Context, ident utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// GetBookings lists the caller's own bookings for customers and every
	// booking for staff and managers.
	GetBookings(ctx context.Context, ident utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, ident utils.Identity, bookingID int64) (*response.BookingResponse, error)
	// UpdateBooking moves a booking between pending and confirmed.
	UpdateBooking(ctx context.Context, bookingID int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	// CancelBooking marks the booking cancelled and returns its seats.
	CancelBooking(ctx context.Context, ident utils.Identity, bookingID int64) error
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, ident utils.Identity, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	// Load the showtime for the price. The capacity read here is advisory
	// only; the authoritative check-and-decrement happens inside the
	// booking transaction.
	showtime, err := s.repo.Showtime.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("get showtime %d: %w", req.ShowtimeID, err)
	}
	if showtime == nil {
		return nil, entity.ErrShowtimeNotFound
	}

	// total_price is frozen here; later price edits never touch it.
	booking := &entity.Booking{
		UserID:      ident.User.ID,
		ShowtimeID:  req.ShowtimeID,
		SeatsBooked: req.SeatsBooked,
		TotalPrice:  showtime.Price * int64(req.SeatsBooked),
		Status:      entity.BookingStatusPending,
		BookingTime: time.Now(),
	}

	if err := s.repo.Booking.CreateWithCapacity(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("showtime_id", booking.ShowtimeID),
		zap.Int("seats_booked", booking.SeatsBooked),
		zap.Int64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, ident utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	var (
		bookings []*entity.Booking
		total    int64
		err      error
	)

	if ident.Role().IsCustomer() {
		bookings, err = s.repo.Booking.FindByUserID(ctx, ident.User.ID, req.Limit(), req.Offset())
		if err != nil {
			return nil, fmt.Errorf("get bookings: %w", err)
		}
		total, err = s.repo.Booking.CountByUserID(ctx, ident.User.ID)
	} else {
		bookings, err = s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			return nil, fmt.Errorf("get bookings: %w", err)
		}
		total, err = s.repo.Booking.CountAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, ident utils.Identity, bookingID int64) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", bookingID, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	// Customers see only their own bookings
	if ident.Role().IsCustomer() && booking.UserID != ident.User.ID {
		s.log.Warn("Booking access denied",
			zap.Int64("booking_id", bookingID),
			zap.Int64("owner_id", booking.UserID),
			zap.Int64("caller_id", ident.User.ID))
		return nil, entity.ErrForbidden
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int64, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", bookingID, err)
	}
	if booking == nil {
		return nil, entity.ErrBookingNotFound
	}

	// Cancelled bookings already gave their seats back; re-opening one here
	// would desynchronize the capacity counter.
	if booking.Status == entity.BookingStatusCancelled {
		return nil, entity.ErrBookingNotFound
	}

	status := entity.BookingStatus(req.Status)
	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.log.Info("Booking updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(status)))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, ident utils.Identity, bookingID int64) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking %d: %w", bookingID, err)
	}
	if booking == nil || booking.Status == entity.BookingStatusCancelled {
		return entity.ErrBookingNotFound
	}

	// Customers may only cancel their own bookings; staff and managers any.
	if ident.Role().IsCustomer() && booking.UserID != ident.User.ID {
		s.log.Warn("Booking cancel denied",
			zap.Int64("booking_id", bookingID),
			zap.Int64("owner_id", booking.UserID),
			zap.Int64("caller_id", ident.User.ID))
		return entity.ErrForbidden
	}

	if err := s.repo.Booking.CancelAndRelease(ctx, bookingID); err != nil {
		return err
	}

	s.log.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int("seats_released", booking.SeatsBooked))

	return nil
}
