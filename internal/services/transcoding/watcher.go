// Package transcoding реализует наблюдатель за фоновой транскодировкой видео.
//
// Наблюдатель периодически опрашивает бэкенд, пока статус не станет
// терминальным. Опрос всегда ограничен: явные условия остановки —
// терминальный статус, отмена контекста, исчерпание бюджета попыток
// или отклонённый токен. Бесконечного таймера здесь быть не может.
package transcoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-stream-client/internal/api"
	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// ErrAttemptsExhausted возвращается, когда бюджет опросов исчерпан,
// а терминальный статус так и не был получен.
var ErrAttemptsExhausted = errors.New("transcoding poll attempts exhausted")

// minInterval — нижняя граница интервала опроса, защита от слишком
// агрессивной конфигурации.
const minInterval = 100 * time.Millisecond

// StatusClient описывает контракт для получения статуса транскодировки.
type StatusClient interface {
	GetTranscodingStatus(ctx context.Context, movieID int) (*models.TranscodingStatus, error)
}

// Watcher опрашивает статус транскодировки фильма с ограниченным интервалом.
type Watcher struct {
	client      StatusClient
	log         *slog.Logger
	interval    time.Duration
	maxAttempts int
}

// NewWatcher создает новый наблюдатель. Слишком маленький интервал
// поднимается до minInterval, неположительный бюджет попыток заменяется
// на один опрос.
func NewWatcher(client StatusClient, log *slog.Logger, interval time.Duration, maxAttempts int) *Watcher {
	if interval < minInterval {
		interval = minInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Watcher{
		client:      client,
		log:         log,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

// Watch опрашивает статус транскодировки фильма до терминального состояния.
// Первый опрос выполняется сразу, далее — по тикеру. onUpdate вызывается
// на каждый успешно полученный статус.
//
// Возвращает последний статус при терминальном состоянии; ошибку контекста
// при отмене; ErrAttemptsExhausted при исчерпании бюджета. Отклонённый
// токен останавливает опрос немедленно — повторять его бессмысленно.
// Сетевые ошибки не прерывают цикл, а лишь тратят попытку.
func (w *Watcher) Watch(ctx context.Context, movieID int, onUpdate func(models.TranscodingStatus)) (*models.TranscodingStatus, error) {
	const op = "transcoding.Watch"
	log := w.log.With(slog.String("op", op), slog.Int("movie_id", movieID))

	var last *models.TranscodingStatus

	poll := func() (*models.TranscodingStatus, bool, error) {
		status, err := w.client.GetTranscodingStatus(ctx, movieID)
		if err != nil {
			if errors.Is(err, api.ErrInvalidToken) {
				return nil, true, fmt.Errorf("%s: %w", op, err)
			}
			log.Warn("transcoding status poll failed", sl.Err(err))
			return nil, false, nil
		}
		if onUpdate != nil {
			onUpdate(*status)
		}
		if status.Terminal() {
			log.Info("transcoding reached terminal status", slog.String("status", status.Status))
			return status, true, nil
		}
		return status, false, nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		status, done, err := poll()
		if status != nil {
			last = status
		}
		if done {
			return status, err
		}
		if attempt == w.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-ticker.C:
		}
	}
	return last, ErrAttemptsExhausted
}
