package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-stream-client/internal/api"
	"github.com/magabrotheeeer/movie-stream-client/internal/config"
	"github.com/magabrotheeeer/movie-stream-client/internal/mockapi"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
	"github.com/magabrotheeeer/movie-stream-client/internal/session"
	"github.com/magabrotheeeer/movie-stream-client/internal/tokenstore"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// newTestClient поднимает мок-бэкенд на httptest-сервере без задержки
// ответов и возвращает клиент, настроенный на него.
func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	mock := mockapi.New(newNoopLogger(), config.MockServer{
		JWTSecretKey: "test-secret-key",
		TokenTTL:     time.Hour,
	})
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL+"/api/v1", 5*time.Second)
}

func loginAs(t *testing.T, client *api.Client, email, password string) string {
	t.Helper()
	token, err := client.Login(context.Background(), email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	client.SetTokenSource(func() string { return token })
	return token
}

func TestLogin(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		token, err := client.Login(ctx, "user@example.com", "password")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Login(ctx, "user@example.com", "wrong-password")
		require.ErrorIs(t, err, api.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := client.Login(ctx, "nobody@example.com", "password")
		require.ErrorIs(t, err, api.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user, err := client.Register(ctx, "newuser", "new@example.com", "password")
		require.NoError(t, err)
		assert.Equal(t, "newuser", user.Username)
		assert.Equal(t, "new@example.com", user.Email)
		assert.False(t, user.IsSuperuser)

		// Новая учётная запись сразу пригодна для входа.
		token, err := client.Login(ctx, "new@example.com", "password")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := client.Register(ctx, "another", "user@example.com", "password")
		require.ErrorIs(t, err, api.ErrDuplicateEmail)
	})

	t.Run("validation failure", func(t *testing.T) {
		_, err := client.Register(ctx, "x", "bad-email", "123")
		require.ErrorIs(t, err, api.ErrValidation)
	})
}

func TestCurrentUser(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	token, err := client.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)

	user, err := client.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.False(t, user.IsSuperuser)

	_, err = client.CurrentUser(ctx, "garbage-token")
	require.ErrorIs(t, err, api.ErrInvalidToken)
}

func TestListMovies(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	all, err := client.ListMovies(ctx, api.ListParams{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	page, err := client.ListMovies(ctx, api.ListParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	found, err := client.ListMovies(ctx, api.ListParams{Search: "matrix"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Matrix", found[0].Title)

	scifi, err := client.ListMovies(ctx, api.ListParams{Genre: "sci-fi"})
	require.NoError(t, err)
	assert.Len(t, scifi, 2)
}

func TestGetMovie(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	movie, err := client.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Shawshank Redemption", movie.Title)

	_, err = client.GetMovie(ctx, 999)
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestCheckAccess_SubscriptionLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// Без токена защищённая ручка недоступна.
	_, err := client.CheckAccess(ctx)
	require.ErrorIs(t, err, api.ErrInvalidToken)

	loginAs(t, client, "user@example.com", "password")

	status, err := client.CheckAccess(ctx)
	require.NoError(t, err)
	assert.False(t, status.HasAccess)
	assert.Equal(t, "none", status.Status)

	// Оплата плана активирует подписку.
	payment, err := client.CreatePayment(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "captured", payment.Status)
	assert.Equal(t, 2, payment.PlanID)
	assert.NotEmpty(t, payment.ID)

	status, err = client.CheckAccess(ctx)
	require.NoError(t, err)
	assert.True(t, status.HasAccess)
	assert.Equal(t, "active", status.Status)
	assert.Positive(t, status.DaysRemaining)

	payments, err := client.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.ID, payments[0].ID)
}

func TestListPlans(t *testing.T) {
	client := newTestClient(t)

	plans, err := client.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "Basic", plans[0].Name)
}

func TestTranscodingStatusProgression(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	loginAs(t, client, "user@example.com", "password")

	// Inception засеян в статусе PROCESSING и завершается детерминированно.
	const movieID = 5
	for i := 0; i < 2; i++ {
		status, err := client.GetTranscodingStatus(ctx, movieID)
		require.NoError(t, err)
		assert.Equal(t, models.TranscodingProcessing, status.Status)
		assert.False(t, status.IsTranscoded)
	}

	status, err := client.GetTranscodingStatus(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, models.TranscodingComplete, status.Status)
	assert.True(t, status.IsTranscoded)
	assert.NotEmpty(t, status.StreamingURL)
}

func TestAdminOperations(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	t.Run("regular user is forbidden", func(t *testing.T) {
		loginAs(t, client, "user@example.com", "password")
		_, err := client.CreateMovie(ctx, models.Movie{Title: "Forbidden"})
		require.ErrorIs(t, err, api.ErrNotAuthorized)
		_, err = client.ListUsers(ctx, 0, 0)
		require.ErrorIs(t, err, api.ErrNotAuthorized)
	})

	t.Run("admin manages catalog", func(t *testing.T) {
		loginAs(t, client, "admin@example.com", "adminpassword")

		created, err := client.CreateMovie(ctx, models.Movie{
			Title:       "Interstellar",
			Description: "A team of explorers travel through a wormhole in space.",
			ReleaseYear: 2014,
			Duration:    169,
			Genre:       "Adventure, Drama, Sci-Fi",
			Rating:      8.7,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		created.Rating = 8.8
		updated, err := client.UpdateMovie(ctx, created.ID, *created)
		require.NoError(t, err)
		assert.InDelta(t, 8.8, updated.Rating, 0.001)

		require.NoError(t, client.DeleteMovie(ctx, created.ID))
		_, err = client.GetMovie(ctx, created.ID)
		require.ErrorIs(t, err, api.ErrNotFound)
	})

	t.Run("admin manages users", func(t *testing.T) {
		loginAs(t, client, "admin@example.com", "adminpassword")

		users, err := client.ListUsers(ctx, 0, 0)
		require.NoError(t, err)
		require.NotEmpty(t, users)

		inactive := false
		updated, err := client.UpdateUser(ctx, 1, api.UserUpdate{IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)

		// Деактивированный пользователь теряет возможность входа.
		_, err = client.Login(ctx, "user@example.com", "password")
		require.ErrorIs(t, err, api.ErrInvalidCredentials)
	})
}

func TestNetworkErrorTaxonomy(t *testing.T) {
	mock := mockapi.New(newNoopLogger(), config.MockServer{
		JWTSecretKey: "test-secret-key",
		TokenTTL:     time.Hour,
	})
	srv := httptest.NewServer(mock.Handler())
	client := api.NewClient(srv.URL+"/api/v1", time.Second)
	srv.Close()

	_, err := client.ListMovies(context.Background(), api.ListParams{})
	require.ErrorIs(t, err, api.ErrNetwork)
}

// TestSessionAgainstLiveBackend проверяет полный жизненный цикл сессии
// против живого мок-бэкенда: вход, перезапуск с сохранённым токеном, выход.
func TestSessionAgainstLiveBackend(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	tokens := tokenstore.NewMemoryStore()

	sess := session.New(newNoopLogger(), client, tokens)
	client.SetTokenSource(sess.Token)

	sess.Initialize(ctx)
	require.Equal(t, session.StatusAnonymous, sess.Snapshot().Status)

	snap, err := sess.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)
	require.Equal(t, session.StatusAuthenticated, snap.Status)
	assert.Equal(t, "testuser", snap.User.Username)

	// Имитация перезапуска: новый контроллер поверх того же хранилища.
	restarted := session.New(newNoopLogger(), client, tokens)
	client.SetTokenSource(restarted.Token)
	restarted.Initialize(ctx)
	snap = restarted.Snapshot()
	require.Equal(t, session.StatusAuthenticated, snap.Status)
	assert.Equal(t, "testuser", snap.User.Username)

	restarted.Logout()
	assert.Equal(t, session.StatusAnonymous, restarted.Snapshot().Status)
	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
