package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articleboard/internal/models"
	"articleboard/internal/repository"
	"articleboard/internal/services"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) CreateUser(_ context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}
func (s *stubUserRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}
func (s *stubUserRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	return false, nil
}
func (s *stubUserRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}

func newJSONHandler(users map[string]*models.User) *JSONHandler {
	return NewJSONHandler(
		services.NewUserLookupService(&stubUserRepo{users: users}),
		services.NewLikeCounterService(),
	)
}

func TestJudge_KnownEmail(t *testing.T) {
	h := newJSONHandler(map[string]*models.User{
		"test@example.com": {ID: 5, Email: "test@example.com", Role: "user"},
	})

	req := httptest.NewRequest(http.MethodGet, "/judge?email=test@example.com", nil)
	rec := httptest.NewRecorder()
	h.Judge(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 5, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestJudge_UnknownEmailYieldsPlaceholder(t *testing.T) {
	h := newJSONHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/judge?email=nobody@example.com", nil)
	rec := httptest.NewRecorder()
	h.Judge(rec, req)

	// the endpoint never errors for an unknown address
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Zero(t, user.ID)
	assert.Empty(t, user.Email)
}

func TestGood_NoValueStartsAtOne(t *testing.T) {
	h := newJSONHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/good", nil)
	rec := httptest.NewRecorder()
	h.Good(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "1", rec.Body.String())
}

func TestGood_IncrementsSuppliedValue(t *testing.T) {
	h := newJSONHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/good?good=5", nil)
	rec := httptest.NewRecorder()
	h.Good(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "6", rec.Body.String())
}

func TestGood_InvalidValue(t *testing.T) {
	h := newJSONHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/good?good=abc", nil)
	rec := httptest.NewRecorder()
	h.Good(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGood_PerArticleCounter(t *testing.T) {
	h := newJSONHandler(nil)

	for i, want := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/good?id=7", nil)
		rec := httptest.NewRecorder()
		h.Good(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		assert.JSONEq(t, want, rec.Body.String(), "request %d", i)
	}

	// a different article starts from its own zero
	req := httptest.NewRequest(http.MethodGet, "/good?id=8", nil)
	rec := httptest.NewRecorder()
	h.Good(rec, req)
	assert.JSONEq(t, "1", rec.Body.String())
}
