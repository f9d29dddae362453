package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubUserRepo serves the single configured user by username, like the SQL
// repository it returns (nil, nil) for anything else.
type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) FindByID(context.Context, int64) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserRepo) FindAll(context.Context, int, int) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) CountAll(context.Context) (int64, error)    { return 0, nil }
func (s *stubUserRepo) Update(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) Delete(context.Context, int64) error        { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newAuthChain(t *testing.T, user *entity.User, guard func(http.Handler) http.Handler) (*utils.TokenManager, http.Handler) {
	t.Helper()
	tokens := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", ExpiryMinutes: 30})
	chain := Authenticate(tokens, &stubUserRepo{user: user}, zap.NewNop())(guard(okHandler()))
	return tokens, chain
}

func TestAuthenticateAnonymousHitsRequireAuth(t *testing.T) {
	_, chain := newAuthChain(t, nil, RequireAuth())

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	_, chain := newAuthChain(t, nil, RequireAuth())

	for _, header := range []string{"Bearer", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.Header.Set("Authorization", header)

		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	_, chain := newAuthChain(t, nil, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateDeletedSubject(t *testing.T) {
	ghost := &entity.User{
		Base:     entity.Base{ID: 7},
		Username: "ghost",
		Role:     entity.RoleCustomer,
	}
	// The repo holds nobody, so a token signed for ghost resolves to no user.
	tokens, chain := newAuthChain(t, nil, RequireAuth())

	token, _, err := tokens.Issue(ghost)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleSeparatesAuthFromAuthz(t *testing.T) {
	alice := &entity.User{
		Base:     entity.Base{ID: 1},
		Username: "alice",
		Role:     entity.RoleCustomer,
	}
	tokens, chain := newAuthChain(t, alice, RequireRole(zap.NewNop(), entity.RoleStaff, entity.RoleManager))

	// No token at all: authentication failure.
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/movies", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token, wrong role: authorization failure.
	token, _, err := tokens.Issue(alice)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAdmitsStaffOrManager(t *testing.T) {
	for _, role := range []entity.UserRole{entity.RoleStaff, entity.RoleManager} {
		user := &entity.User{
			Base:     entity.Base{ID: 1},
			Username: "worker",
			Role:     role,
		}
		tokens, chain := newAuthChain(t, user, RequireRole(zap.NewNop(), entity.RoleStaff, entity.RoleManager))

		token, _, err := tokens.Issue(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		chain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}
}
