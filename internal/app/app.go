// Package app собирает клиент целиком: хранилище токена, REST-клиент,
// контроллер сессии, шлюз доступа, охранник маршрутов и наблюдатель
// транскодировки. Контроллер сессии — явно принадлежащий приложению
// экземпляр, передаваемый потребителям, а не глобальное состояние.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/magabrotheeeer/movie-stream-client/internal/access"
	"github.com/magabrotheeeer/movie-stream-client/internal/api"
	"github.com/magabrotheeeer/movie-stream-client/internal/config"
	"github.com/magabrotheeeer/movie-stream-client/internal/mockapi"
	"github.com/magabrotheeeer/movie-stream-client/internal/routes"
	"github.com/magabrotheeeer/movie-stream-client/internal/services/transcoding"
	"github.com/magabrotheeeer/movie-stream-client/internal/session"
	"github.com/magabrotheeeer/movie-stream-client/internal/tokenstore"
)

// App — собранный клиент стриминга.
type App struct {
	log        *slog.Logger
	cfg        *config.Config
	mockServer *http.Server // nil, если мок-бэкенд выключен

	Client  *api.Client
	Session *session.Controller
	Gate    *access.Gate
	Guard   *routes.Guard
	Watcher *transcoding.Watcher
}

// New создаёт приложение из конфига.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	tokens, err := tokenstore.NewFileStore(cfg.TokenStorage.Path)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.BaseURL, cfg.TimeoutAPI)
	sess := session.New(log, client, tokens)
	client.SetTokenSource(sess.Token)

	a := &App{
		log:     log,
		cfg:     cfg,
		Client:  client,
		Session: sess,
		Gate:    access.New(log, client),
		Guard:   routes.NewGuard(routes.NewTable(routes.DefaultTable()), sess),
		Watcher: transcoding.NewWatcher(client, log, cfg.PollInterval, cfg.MaxAttempts),
	}

	if cfg.UseMockData {
		mock := mockapi.New(log, cfg.MockServer)
		a.mockServer = &http.Server{
			Addr:         cfg.AddressMock,
			Handler:      mock.Handler(),
			ReadTimeout:  cfg.TimeoutAPI,
			WriteTimeout: cfg.TimeoutAPI,
		}
	}
	return a, nil
}

// Run запускает мок-бэкенд (если он включён), выполняет начальную гидрацию
// сессии и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.mockServer != nil {
		// Слушатель открывается до гидрации: первый же запрос клиента
		// должен попасть на уже связанный порт.
		ln, err := net.Listen("tcp", a.mockServer.Addr)
		if err != nil {
			return err
		}
		go func() {
			a.log.Info("mock backend listening", slog.String("address", a.mockServer.Addr))
			err := a.mockServer.Serve(ln)
			if errors.Is(err, http.ErrServerClosed) {
				errCh <- nil
			} else {
				errCh <- err
			}
		}()
	}

	a.Session.Initialize(ctx)
	snap := a.Session.Snapshot()
	if snap.User != nil {
		a.log.Info("session ready",
			slog.String("status", string(snap.Status)),
			slog.String("username", snap.User.Username))
	} else {
		a.log.Info("session ready", slog.String("status", string(snap.Status)))
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if a.mockServer != nil {
			timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			a.log.Info("shutting down mock backend gracefully")
			return a.mockServer.Shutdown(timeoutCtx)
		}
		return nil
	}
}
