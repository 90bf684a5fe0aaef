// Package session реализует контроллер сессии — единственный источник истины
// о том, кто сейчас пользуется клиентом.
//
// Контроллер владеет жизненным циклом аутентификации: гидрация сохранённого
// токена при старте, вход, выход и разрешение профиля пользователя.
// Все переходы состояния атомарны относительно Snapshot: читатель никогда
// не увидит наполовину применённый переход.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
	"github.com/magabrotheeeer/movie-stream-client/internal/tokenstore"
)

// Status — состояние сессии.
type Status string

const (
	// StatusInitializing — идёт начальная гидрация после старта процесса.
	// Потребители не принимают решений о доступе, пока статус не станет
	// терминальным.
	StatusInitializing Status = "initializing"
	// StatusAuthenticated — профиль пользователя разрешён.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous — сессии нет.
	StatusAnonymous Status = "anonymous"
)

// ErrSuperseded возвращается из Login, если за время обмена учётных данных
// сессию успел закрыть Logout. Результат такого входа не применяется.
var ErrSuperseded = errors.New("login superseded by logout")

// Snapshot — согласованный снимок сессии для потребителей.
//
// Инвариант: User != nil тогда и только тогда, когда Status == StatusAuthenticated.
type Snapshot struct {
	Status Status
	User   *models.User
}

// AuthBackend описывает контракт бэкенда аутентификации.
type AuthBackend interface {
	// Login обменивает учётные данные на bearer-токен.
	Login(ctx context.Context, email, password string) (string, error)
	// Register создаёт учётную запись и возвращает профиль.
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	// CurrentUser разрешает профиль пользователя по токену.
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Controller владеет состоянием сессии и сохранённым токеном.
// Никакой другой компонент не пишет токен напрямую.
type Controller struct {
	log    *slog.Logger
	auth   AuthBackend
	tokens tokenstore.Store

	mu     sync.Mutex
	status Status
	user   *models.User
	token  string
	// gen — поколение сессии. Увеличивается только при Logout.
	// Асинхронное разрешение профиля запоминает поколение на старте
	// и отбрасывает свой результат, если поколение сдвинулось:
	// устаревший ответ не должен воскресить закрытую сессию.
	// Гонка login/initialize разрешается по порядку завершения —
	// обе операции сходятся к одной истине бэкенда.
	gen uint64

	nextSubID int
	subs      map[int]func(Snapshot)
}

// New создает новый контроллер в состоянии StatusInitializing.
func New(log *slog.Logger, auth AuthBackend, tokens tokenstore.Store) *Controller {
	return &Controller{
		log:    log,
		auth:   auth,
		tokens: tokens,
		status: StatusInitializing,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot возвращает текущий снимок сессии.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Status: c.status, User: c.user}
}

// Token возвращает текущий bearer-токен или пустую строку.
// Используется клиентом API как источник заголовка Authorization.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Subscribe регистрирует подписчика на смену снимка сессии и возвращает
// функцию отписки. Подписчик вызывается после каждого применённого перехода.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// currentGen возвращает текущее поколение сессии.
func (c *Controller) currentGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// apply применяет переход, если поколение не сдвинулось с момента startGen.
// Возвращает false, если результат устарел и был отброшен.
func (c *Controller) apply(startGen uint64, status Status, user *models.User, token string) bool {
	c.mu.Lock()
	if c.gen != startGen {
		c.mu.Unlock()
		c.log.Info("discarding stale session transition", slog.String("status", string(status)))
		return false
	}
	c.status = status
	c.user = user
	c.token = token
	snap := Snapshot{Status: c.status, User: c.user}
	listeners := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

// Initialize выполняет начальную гидрацию сессии: читает сохранённый токен
// и разрешает по нему профиль пользователя.
//
// Любая неудача — включая протухший токен — тихо приводит сессию
// в StatusAnonymous с очисткой токена; ошибка пользователю не показывается.
// После возврата статус гарантированно терминальный.
func (c *Controller) Initialize(ctx context.Context) {
	const op = "session.Initialize"
	log := c.log.With(slog.String("op", op))

	startGen := c.currentGen()

	token, err := c.tokens.Load()
	if err != nil {
		log.Warn("failed to read stored token", sl.Err(err))
		token = ""
	}
	if token == "" {
		// Токена нет — аноним без единого сетевого вызова.
		c.apply(startGen, StatusAnonymous, nil, "")
		return
	}

	user, err := c.auth.CurrentUser(ctx, token)
	if err != nil {
		log.Info("stored token rejected, starting anonymous", sl.Err(err))
		if applied := c.apply(startGen, StatusAnonymous, nil, ""); applied {
			if err := c.tokens.Clear(); err != nil {
				log.Warn("failed to clear stored token", sl.Err(err))
			}
		}
		return
	}
	if c.apply(startGen, StatusAuthenticated, user, token) {
		log.Info("session hydrated", slog.String("username", user.Username))
	}
}

// Login обменивает учётные данные на токен, сохраняет его и разрешает профиль.
//
// При ошибке бэкенда прежнее состояние сессии не меняется, а ошибка
// возвращается вызывающему как есть — для показа на форме входа.
// Токен сохраняется только после успешного обмена, никогда заранее.
func (c *Controller) Login(ctx context.Context, email, password string) (Snapshot, error) {
	const op = "session.Login"
	log := c.log.With(slog.String("op", op))

	startGen := c.currentGen()

	token, err := c.auth.Login(ctx, email, password)
	if err != nil {
		log.Info("login rejected", sl.Err(err))
		return c.Snapshot(), err
	}

	user, err := c.auth.CurrentUser(ctx, token)
	if err != nil {
		// Токен выдан, но профиль не разрешился — сессия невозможна.
		log.Error("failed to resolve user after login", sl.Err(err))
		if applied := c.apply(startGen, StatusAnonymous, nil, ""); applied {
			if clearErr := c.tokens.Clear(); clearErr != nil {
				log.Warn("failed to clear stored token", sl.Err(clearErr))
			}
		}
		return c.Snapshot(), err
	}

	if !c.apply(startGen, StatusAuthenticated, user, token) {
		return c.Snapshot(), ErrSuperseded
	}
	if err := c.tokens.Save(token); err != nil {
		// Сессия действительна в памяти, но перезапуск её не переживёт.
		log.Warn("failed to persist token", sl.Err(err))
	}
	log.Info("login success", slog.String("username", user.Username))
	return Snapshot{Status: StatusAuthenticated, User: user}, nil
}

// Register — передача регистрации бэкенду. Состояние сессии не меняется:
// после успешной регистрации пользователь входит отдельным вызовом Login.
func (c *Controller) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return c.auth.Register(ctx, username, email, password)
}

// Logout синхронно закрывает сессию: очищает сохранённый токен и переводит
// состояние в StatusAnonymous. Всегда успешен локально, независимо от
// доступности бэкенда. Ответы операций, начатых до Logout, отбрасываются.
func (c *Controller) Logout() {
	const op = "session.Logout"
	log := c.log.With(slog.String("op", op))

	if err := c.tokens.Clear(); err != nil {
		log.Warn("failed to clear stored token", sl.Err(err))
	}

	c.mu.Lock()
	c.status = StatusAnonymous
	c.user = nil
	c.token = ""
	c.gen++
	snap := Snapshot{Status: c.status, User: c.user}
	listeners := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	log.Info("session closed")
}
