package transcoding_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/movie-stream-client/internal/api"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
	"github.com/magabrotheeeer/movie-stream-client/internal/services/transcoding"
)

type StatusClientMock struct {
	mock.Mock
}

func (m *StatusClientMock) GetTranscodingStatus(ctx context.Context, movieID int) (*models.TranscodingStatus, error) {
	args := m.Called(ctx, movieID)
	status, _ := args.Get(0).(*models.TranscodingStatus)
	return status, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func processing(movieID int) *models.TranscodingStatus {
	return &models.TranscodingStatus{MovieID: movieID, Status: models.TranscodingProcessing}
}

func complete(movieID int) *models.TranscodingStatus {
	return &models.TranscodingStatus{
		MovieID:      movieID,
		Status:       models.TranscodingComplete,
		IsTranscoded: true,
		StreamingURL: "https://example.com/videos/movie.mp4",
	}
}

func TestWatch_StopsOnTerminalStatus(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(processing(5), nil).Twice()
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(complete(5), nil).Once()

	var updates []string
	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Millisecond, 10)
	status, err := w.Watch(context.Background(), 5, func(s models.TranscodingStatus) {
		updates = append(updates, s.Status)
	})

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.TranscodingComplete, status.Status)
	assert.True(t, status.IsTranscoded)
	assert.NotEmpty(t, status.StreamingURL)
	assert.Equal(t, []string{
		models.TranscodingProcessing,
		models.TranscodingProcessing,
		models.TranscodingComplete,
	}, updates)
	clientMock.AssertExpectations(t)
}

func TestWatch_StopsOnFailedStatus(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 7).
		Return(&models.TranscodingStatus{MovieID: 7, Status: models.TranscodingFailed}, nil).Once()

	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Millisecond, 10)
	status, err := w.Watch(context.Background(), 7, nil)

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.TranscodingFailed, status.Status)
}

func TestWatch_AttemptsExhausted(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(processing(5), nil).Times(3)

	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Millisecond, 3)
	status, err := w.Watch(context.Background(), 5, nil)

	require.ErrorIs(t, err, transcoding.ErrAttemptsExhausted)
	require.NotNil(t, status)
	assert.Equal(t, models.TranscodingProcessing, status.Status)
	clientMock.AssertExpectations(t)
}

func TestWatch_ContextCancellation(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(processing(5), nil)

	ctx, cancel := context.WithCancel(context.Background())
	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Hour, 10)

	done := make(chan struct{})
	var status *models.TranscodingStatus
	var err error
	go func() {
		defer close(done)
		status, err = w.Watch(ctx, 5, nil)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, status, "last observed status must be returned on cancellation")
}

func TestWatch_StopsOnRejectedToken(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(nil, api.ErrInvalidToken).Once()

	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Millisecond, 10)
	_, err := w.Watch(context.Background(), 5, nil)

	require.ErrorIs(t, err, api.ErrInvalidToken)
	clientMock.AssertNumberOfCalls(t, "GetTranscodingStatus", 1)
}

func TestWatch_NetworkErrorSpendsAttempt(t *testing.T) {
	clientMock := new(StatusClientMock)
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(nil, errors.New("connection refused")).Once()
	clientMock.On("GetTranscodingStatus", mock.Anything, 5).
		Return(complete(5), nil).Once()

	w := transcoding.NewWatcher(clientMock, newNoopLogger(), time.Millisecond, 5)
	status, err := w.Watch(context.Background(), 5, nil)

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.TranscodingComplete, status.Status)
	clientMock.AssertExpectations(t)
}
