package usecase

import (
	"context"
	"sync"
	"testing"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingClaimsSeatsAndFreezesPrice(t *testing.T) {
	repo, showtimes := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)

	booking, err := svc.CreateBooking(context.Background(), identityFor(customer(1)), &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), booking.UserID)
	assert.Equal(t, 3, booking.SeatsBooked)
	assert.Equal(t, int64(3600), booking.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)

	remaining, err := showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, remaining.AvailableSeats)

	// A later price change never rewrites an existing booking's total.
	remaining.Price = 9900
	require.NoError(t, showtimes.Update(context.Background(), remaining))

	got, err := svc.GetBookingByID(context.Background(), identityFor(customer(1)), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), got.TotalPrice)
}

func TestCreateBookingInsufficientSeats(t *testing.T) {
	repo, showtimes := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 47, 1200)

	_, err := svc.CreateBooking(context.Background(), identityFor(customer(1)), &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 48,
	})
	require.ErrorIs(t, err, entity.ErrInsufficientSeats)

	// A rejected booking mutates nothing.
	remaining, err := showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, remaining.AvailableSeats)

	count, err := repo.Booking.CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())

	_, err := svc.CreateBooking(context.Background(), identityFor(customer(1)), &request.CreateBookingRequest{
		ShowtimeID:  999,
		SeatsBooked: 1,
	})
	require.ErrorIs(t, err, entity.ErrShowtimeNotFound)
}

func TestCreateBookingRejectsNonPositiveSeats(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 10, 1200)

	_, err := svc.CreateBooking(context.Background(), identityFor(customer(1)), &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: -2,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	repo, showtimes := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 10, 500)

	const (
		attempts = 20
		perSeat  = 3
	)

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), identityFor(customer(userID)), &request.CreateBookingRequest{
				ShowtimeID:  showtime.ID,
				SeatsBooked: perSeat,
			})
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, entity.ErrInsufficientSeats)
		}
	}

	remaining, err := showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)

	// Admitted seats plus the remainder always equals the starting
	// capacity, and the counter never goes negative.
	assert.Equal(t, 10-succeeded*perSeat, remaining.AvailableSeats)
	assert.GreaterOrEqual(t, remaining.AvailableSeats, 0)
	assert.Equal(t, 3, succeeded)
}

func TestCancelBookingReleasesSeatsExactlyOnce(t *testing.T) {
	repo, showtimes := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)
	ident := identityFor(customer(1))

	booking, err := svc.CreateBooking(context.Background(), ident, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 5,
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), ident, booking.ID))

	remaining, err := showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, remaining.AvailableSeats)

	// A second cancel is indistinguishable from a missing booking and must
	// not credit the seats again.
	err = svc.CancelBooking(context.Background(), ident, booking.ID)
	require.ErrorIs(t, err, entity.ErrBookingNotFound)

	remaining, err = showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, remaining.AvailableSeats)
}

func TestCancelBookingOwnership(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)

	owner := identityFor(customer(1))
	booking, err := svc.CreateBooking(context.Background(), owner, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 2,
	})
	require.NoError(t, err)

	// Another customer may not cancel it.
	other := identityFor(customer(2))
	err = svc.CancelBooking(context.Background(), other, booking.ID)
	require.ErrorIs(t, err, entity.ErrForbidden)

	// Staff may.
	require.NoError(t, svc.CancelBooking(context.Background(), identityFor(staff(3)), booking.ID))
}

func TestGetBookingByIDScopedToOwnerForCustomers(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)

	owner := identityFor(customer(1))
	booking, err := svc.CreateBooking(context.Background(), owner, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 1,
	})
	require.NoError(t, err)

	_, err = svc.GetBookingByID(context.Background(), identityFor(customer(2)), booking.ID)
	require.ErrorIs(t, err, entity.ErrForbidden)

	got, err := svc.GetBookingByID(context.Background(), identityFor(staff(3)), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)
}

func TestGetBookingsListScope(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)

	for userID := int64(1); userID <= 2; userID++ {
		_, err := svc.CreateBooking(context.Background(), identityFor(customer(userID)), &request.CreateBookingRequest{
			ShowtimeID:  showtime.ID,
			SeatsBooked: 1,
		})
		require.NoError(t, err)
	}

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	mine, err := svc.GetBookings(context.Background(), identityFor(customer(1)), page)
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, int64(1), mine.Data[0].UserID)

	all, err := svc.GetBookings(context.Background(), identityFor(staff(9)), page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)
	assert.Equal(t, int64(2), all.Pagination.Total)
}

func TestUpdateBookingStatus(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)
	ident := identityFor(customer(1))

	booking, err := svc.CreateBooking(context.Background(), ident, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBooking(context.Background(), booking.ID, &request.UpdateBookingRequest{
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, updated.Status)

	// Cancellation is not reachable through update.
	_, err = svc.UpdateBooking(context.Background(), booking.ID, &request.UpdateBookingRequest{
		Status: "cancelled",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestStatusWriteAfterCancelDoesNotResurrect(t *testing.T) {
	repo, showtimes := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 10, 500)
	ident := identityFor(customer(1))

	booking, err := svc.CreateBooking(context.Background(), ident, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 4,
	})
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(context.Background(), ident, booking.ID))

	// A status write that raced the cancel (its not-cancelled check passed
	// before the cancel committed) lands here. The repository's own guard
	// must refuse it: the seats were already credited back, so confirming
	// the booking now would overcommit the showtime.
	err = repo.Booking.UpdateStatus(context.Background(), booking.ID, entity.BookingStatusConfirmed)
	require.ErrorIs(t, err, entity.ErrBookingNotFound)

	stored, err := repo.Booking.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, stored.Status)

	remaining, err := showtimes.FindByID(context.Background(), showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining.AvailableSeats)
}

func TestUpdateBookingCancelledIsGone(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewBookingService(repo, testLogger())
	showtime := seedShowtime(repo, 50, 1200)
	ident := identityFor(customer(1))

	booking, err := svc.CreateBooking(context.Background(), ident, &request.CreateBookingRequest{
		ShowtimeID:  showtime.ID,
		SeatsBooked: 1,
	})
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(context.Background(), ident, booking.ID))

	_, err = svc.UpdateBooking(context.Background(), booking.ID, &request.UpdateBookingRequest{
		Status: "confirmed",
	})
	require.ErrorIs(t, err, entity.ErrBookingNotFound)
}
