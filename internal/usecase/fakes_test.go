package usecase

import (
	"context"
	"sync"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the conventions of the pgx
// implementations: FindByX returns (nil, nil) when nothing matches, and the
// booking fake claims and releases seats under a lock so the concurrency
// tests exercise the same admission semantics as the SQL transaction.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return entity.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return entity.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for i := int64(1); i <= f.nextID; i++ {
		if u, ok := f.users[i]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeMovieRepo struct {
	mu     sync.Mutex
	nextID int64
	movies map[int64]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[int64]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	movie.ID = f.nextID
	cp := *movie
	f.movies[movie.ID] = &cp
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Movie
	for i := int64(1); i <= f.nextID; i++ {
		if m, ok := f.movies[i]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.movies)), nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *movie
	f.movies[movie.ID] = &cp
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.movies, id)
	return nil
}

type fakeShowtimeRepo struct {
	mu        sync.Mutex
	nextID    int64
	showtimes map[int64]*entity.Showtime
}

func newFakeShowtimeRepo() *fakeShowtimeRepo {
	return &fakeShowtimeRepo{showtimes: make(map[int64]*entity.Showtime)}
}

func (f *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	showtime.ID = f.nextID
	cp := *showtime
	f.showtimes[showtime.ID] = &cp
	return nil
}

func (f *fakeShowtimeRepo) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeShowtimeRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for i := int64(1); i <= f.nextID; i++ {
		if st, ok := f.showtimes[i]; ok {
			cp := *st
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeShowtimeRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.showtimes)), nil
}

func (f *fakeShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.showtimes[showtime.ID]
	if !ok {
		return entity.ErrShowtimeNotFound
	}
	// available_seats is owned by the booking side, like the SQL UPDATE
	// that leaves the column out.
	cp := *showtime
	cp.AvailableSeats = existing.AvailableSeats
	f.showtimes[showtime.ID] = &cp
	return nil
}

func (f *fakeShowtimeRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.showtimes, id)
	return nil
}

// claimSeats mirrors the conditional UPDATE: it fails without mutating when
// the showtime is missing or short on seats.
func (f *fakeShowtimeRepo) claimSeats(id int64, seats int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.showtimes[id]
	if !ok {
		return entity.ErrShowtimeNotFound
	}
	if st.AvailableSeats < seats {
		return entity.ErrInsufficientSeats
	}
	st.AvailableSeats -= seats
	return nil
}

func (f *fakeShowtimeRepo) releaseSeats(id int64, seats int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.showtimes[id]; ok {
		st.AvailableSeats += seats
	}
}

type fakeBookingRepo struct {
	mu        sync.Mutex
	nextID    int64
	bookings  map[int64]*entity.Booking
	showtimes *fakeShowtimeRepo
}

func newFakeBookingRepo(showtimes *fakeShowtimeRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  make(map[int64]*entity.Booking),
		showtimes: showtimes,
	}
}

func (f *fakeBookingRepo) CreateWithCapacity(_ context.Context, booking *entity.Booking) error {
	if err := f.showtimes.claimSeats(booking.ShowtimeID, booking.SeatsBooked); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	booking.ID = f.nextID
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) CancelAndRelease(_ context.Context, bookingID int64) error {
	f.mu.Lock()
	b, ok := f.bookings[bookingID]
	if !ok || b.Status == entity.BookingStatusCancelled {
		f.mu.Unlock()
		return entity.ErrBookingNotFound
	}
	b.Status = entity.BookingStatusCancelled
	showtimeID, seats := b.ShowtimeID, b.SeatsBooked
	f.mu.Unlock()

	f.showtimes.releaseSeats(showtimeID, seats)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for i := int64(1); i <= f.nextID; i++ {
		if b, ok := f.bookings[i]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID int64, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for i := int64(1); i <= f.nextID; i++ {
		if b, ok := f.bookings[i]; ok && b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeBookingRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID int64, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	// Mirrors the SQL status guard: cancelled bookings are not updatable.
	if !ok || b.Status == entity.BookingStatusCancelled {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// newTestRepository wires the fakes into the aggregate the services consume.
func newTestRepository() (*repository.Repository, *fakeShowtimeRepo) {
	showtimes := newFakeShowtimeRepo()
	return &repository.Repository{
		User:     newFakeUserRepo(),
		Movie:    newFakeMovieRepo(),
		Showtime: showtimes,
		Booking:  newFakeBookingRepo(showtimes),
	}, showtimes
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:        "test-secret",
			ExpiryMinutes: 30,
		},
		Auth: utils.AuthConfig{
			OpenRegistration: true,
		},
	}
}

func identityFor(user *entity.User) utils.Identity {
	return utils.Identity{User: user}
}

func customer(id int64) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: id},
		Username: "customer",
		Email:    "customer@example.com",
		Role:     entity.RoleCustomer,
	}
}

func staff(id int64) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: id},
		Username: "staff",
		Email:    "staff@example.com",
		Role:     entity.RoleStaff,
	}
}

func seedShowtime(repo *repository.Repository, seats int, price int64) *entity.Showtime {
	showtime := &entity.Showtime{
		MovieID:        1,
		Theater:        "Screen 1",
		StartTime:      time.Now().Add(time.Hour),
		EndTime:        time.Now().Add(3 * time.Hour),
		AvailableSeats: seats,
		Price:          price,
	}
	_ = repo.Showtime.Create(context.Background(), showtime)
	return showtime
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
