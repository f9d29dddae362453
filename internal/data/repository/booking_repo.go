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

type BookingRepository interface {
	// CreateWithCapacity atomically claims seats on the showtime and inserts
	// the booking. Returns ErrShowtimeNotFound or ErrInsufficientSeats
	// without mutating anything when the claim fails.
	CreateWithCapacity(ctx context.Context, booking *entity.Booking) error
	// CancelAndRelease atomically marks the booking cancelled and returns
	// its seats to the showtime. A booking that is already cancelled (or
	// absent) yields ErrBookingNotFound so seats are never credited twice.
	CancelAndRelease(ctx context.Context, bookingID int64) error

	FindByID(ctx context.Context, id int64) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, showtime_id, seats_booked, total_price, status, booking_time`

func (r *bookingRepository) CreateWithCapacity(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional decrement is the concurrency guard: the WHERE clause makes
	// check-then-decrement a single atomic statement, so two concurrent
	// bookings can never jointly take the counter below zero.
	claim, err := tx.Exec(ctx, `
		UPDATE showtimes
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
	`, booking.ShowtimeID, booking.SeatsBooked)
	if err != nil {
		r.log.Error("Failed to claim seats",
			zap.Error(err),
			zap.Int64("showtime_id", booking.ShowtimeID),
			zap.Int("seats", booking.SeatsBooked),
		)
		return fmt.Errorf("claim %d seats on showtime %d: %w", booking.SeatsBooked, booking.ShowtimeID, err)
	}

	if claim.RowsAffected() == 0 {
		// Distinguish a missing showtime from an exhausted one.
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM showtimes WHERE id = $1)`, booking.ShowtimeID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check showtime %d: %w", booking.ShowtimeID, err)
		}
		if !exists {
			return entity.ErrShowtimeNotFound
		}
		return entity.ErrInsufficientSeats
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, showtime_id, seats_booked, total_price, status, booking_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		booking.UserID,
		booking.ShowtimeID,
		booking.SeatsBooked,
		booking.TotalPrice,
		booking.Status,
		booking.BookingTime,
	).Scan(&booking.ID)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.Int64("user_id", booking.UserID),
			zap.Int64("showtime_id", booking.ShowtimeID),
		)
		return fmt.Errorf("insert booking for showtime %d: %w", booking.ShowtimeID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) CancelAndRelease(ctx context.Context, bookingID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status guard makes cancellation exactly-once: a second cancel
	// matches zero rows and credits nothing.
	var showtimeID int64
	var seats int
	err = tx.QueryRow(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1 AND status <> $2
		RETURNING showtime_id, seats_booked
	`, bookingID, entity.BookingStatusCancelled).Scan(&showtimeID, &seats)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrBookingNotFound
	}
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}

	// Return the seats. The showtime may have been deleted independently;
	// in that case there is nothing to credit.
	_, err = tx.Exec(ctx, `
		UPDATE showtimes
		SET available_seats = available_seats + $2
		WHERE id = $1
	`, showtimeID, seats)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seats", seats),
		)
		return fmt.Errorf("release %d seats on showtime %d: %w", seats, showtimeID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel transaction: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.SeatsBooked,
		&booking.TotalPrice,
		&booking.Status,
		&booking.BookingTime,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.Int64("booking_id", id),
		)
		return nil, fmt.Errorf("find booking by ID %d: %w", id, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY booking_time DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to get bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find bookings by user ID %d: %w", userID, err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count all bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, fmt.Errorf("count bookings by user ID %d: %w", userID, err)
	}

	return count, nil
}

// UpdateStatus moves a booking between pending and confirmed. It never
// touches seat accounting; cancellation goes through CancelAndRelease. The
// status guard keeps a concurrent cancel from being overwritten: once a
// booking is cancelled its seats are already credited back, so flipping it
// to another status here would desynchronize the capacity counter.
func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1 AND status <> $3`

	result, err := r.db.Exec(ctx, query, bookingID, status, entity.BookingStatusCancelled)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %d status to %s: %w", bookingID, string(status), err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func scanBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ShowtimeID,
			&booking.SeatsBooked,
			&booking.TotalPrice,
			&booking.Status,
			&booking.BookingTime,
		)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}
