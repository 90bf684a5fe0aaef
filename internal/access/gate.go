// Package access реализует шлюз доступа: перевод снимка сессии и требования
// ресурса в одно из решений — показать, отправить на вход, предложить
// подписку или отказать из-за отсутствия прав администратора.
//
// Решения об отказе — не ошибки: это нормальные выходы, по которым
// потребитель строит редирект или призыв к действию. Ошибкой считается
// только недоступность бэкенда подписок — она возвращается отдельно,
// чтобы потребитель мог предложить повтор, а не платёжную стену.
package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
	"github.com/magabrotheeeer/movie-stream-client/internal/session"
)

// Requirement — декларативное требование доступа, навешиваемое на маршрут.
type Requirement int

const (
	// RequirementNone — публичный ресурс.
	RequirementNone Requirement = iota
	// RequirementAuth — ресурс требует аутентификации.
	RequirementAuth
	// RequirementAdmin — ресурс требует прав администратора.
	RequirementAdmin
)

// Kind — вид решения шлюза.
type Kind int

const (
	// Allowed — доступ разрешён.
	Allowed Kind = iota
	// DenyRequireLogin — нужен вход; Decision.Location хранит исходный
	// адрес для возврата после входа.
	DenyRequireLogin
	// DenyRequireSubscription — нужна действующая подписка.
	DenyRequireSubscription
	// DenyRequireAdmin — нужны права администратора.
	DenyRequireAdmin
)

// Decision — вердикт шлюза для пары (сессия, ресурс).
// Ровно один вид решения на каждую оценку.
type Decision struct {
	Kind     Kind
	Location string
}

// SubscriptionBackend описывает контракт бэкенда подписок.
type SubscriptionBackend interface {
	// CheckAccess возвращает свежий статус подписки текущего пользователя.
	CheckAccess(ctx context.Context) (*models.SubscriptionStatus, error)
}

// EvaluateRoute оценивает доступ к маршруту. Чистая синхронная функция:
// использует только переданный снимок, побочных эффектов не имеет.
//
// Аутентифицированный пользователь без прав администратора на админском
// маршруте получает DenyRequireAdmin, а не редирект на вход.
func EvaluateRoute(req Requirement, snap session.Snapshot, location string) Decision {
	switch req {
	case RequirementAuth:
		if snap.Status != session.StatusAuthenticated {
			return Decision{Kind: DenyRequireLogin, Location: location}
		}
		return Decision{Kind: Allowed}
	case RequirementAdmin:
		if snap.Status != session.StatusAuthenticated {
			return Decision{Kind: DenyRequireLogin, Location: location}
		}
		if !snap.User.IsSuperuser {
			return Decision{Kind: DenyRequireAdmin}
		}
		return Decision{Kind: Allowed}
	default:
		return Decision{Kind: Allowed}
	}
}

// Gate выполняет проверку доступа к воспроизводимому контенту.
type Gate struct {
	log  *slog.Logger
	subs SubscriptionBackend
}

// New создаёт новый шлюз доступа.
func New(log *slog.Logger, subs SubscriptionBackend) *Gate {
	return &Gate{
		log:  log,
		subs: subs,
	}
}

// EvaluateContent решает, можно ли показывать пользователю контент.
//
// Администратор получает Allowed без обращения к бэкенду подписок.
// Для остальных статус подписки запрашивается заново при каждой проверке:
// прошлые значения не переиспользуются. Недоступность бэкенда возвращается
// ошибкой, а не решением — отказ по сетевой ошибке лишил бы доступа
// платящего пользователя.
func (g *Gate) EvaluateContent(ctx context.Context, snap session.Snapshot) (Decision, error) {
	const op = "access.EvaluateContent"

	if snap.Status != session.StatusAuthenticated {
		return Decision{Kind: DenyRequireLogin}, nil
	}
	if snap.User.IsSuperuser {
		return Decision{Kind: Allowed}, nil
	}

	status, err := g.subs.CheckAccess(ctx)
	if err != nil {
		g.log.Error("subscription check failed", sl.Err(err))
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	if !status.HasAccess {
		return Decision{Kind: DenyRequireSubscription}, nil
	}
	return Decision{Kind: Allowed}, nil
}
