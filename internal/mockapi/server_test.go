package mockapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-stream-client/internal/config"
	"github.com/magabrotheeeer/movie-stream-client/internal/mockapi"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return mockapi.New(log, config.MockServer{
		JWTSecretKey: "test-secret-key",
		TokenTTL:     time.Hour,
	}).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, mockapi.Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp mockapi.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func login(t *testing.T, handler http.Handler, email, password string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/login", body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	token, _ := data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginHandler(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("success envelope", func(t *testing.T) {
		body := `{"email":"user@example.com","password":"password"}`
		rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/login", body, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, mockapi.StatusOK, resp.Status)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "bearer", data["token_type"])
	})

	t.Run("invalid json body", func(t *testing.T) {
		rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/login", "{not json", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, mockapi.StatusError, resp.Status)
	})

	t.Run("validation failure", func(t *testing.T) {
		body := `{"email":"not-an-email","password":"123"}`
		rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/login", body, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, resp.Error, "Email")
		assert.Contains(t, resp.Error, "Password")
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"email":"user@example.com","password":"wrong-password"}`
		rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "incorrect email or password", resp.Error)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler := newTestHandler(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/subscriptions/check-access"},
		{http.MethodGet, "/api/v1/payments"},
		{http.MethodGet, "/api/v1/movies/1/transcoding-status"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec, resp := doJSON(t, handler, tc.method, tc.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, mockapi.StatusError, resp.Status)
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		rec, resp := doJSON(t, handler, http.MethodGet, "/api/v1/users/me", "", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid or expired token", resp.Error)
	})
}

func TestAdminRoutesForbiddenForRegularUser(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "user@example.com", "password")

	rec, resp := doJSON(t, handler, http.MethodGet, "/api/v1/users", "", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin privileges required", resp.Error)
}

func TestCreateMovieValidation(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin@example.com", "adminpassword")

	body := `{"title":"","description":"","release_year":1800,"duration":0,"genre":""}`
	rec, resp := doJSON(t, handler, http.MethodPost, "/api/v1/movies", body, token)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, mockapi.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "Title")
}

func TestCheckAccessForAdmin(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin@example.com", "adminpassword")

	rec, resp := doJSON(t, handler, http.MethodGet, "/api/v1/subscriptions/check-access", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["has_access"])
}

func TestLatencyMiddleware(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	handler := mockapi.New(log, config.MockServer{
		Latency:      50 * time.Millisecond,
		JWTSecretKey: "test-secret-key",
		TokenTTL:     time.Hour,
	}).Handler()

	start := time.Now()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", strings.NewReader(""))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
