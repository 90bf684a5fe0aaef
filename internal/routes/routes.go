// Package routes содержит декларативную таблицу маршрутов клиента и охранник,
// который перед отрисовкой страницы превращает путь и снимок сессии в решение
// шлюза доступа. Сами страницы — потребители этого контракта и в состав
// клиента не входят.
package routes

import (
	"errors"
	"strings"

	"github.com/magabrotheeeer/movie-stream-client/internal/access"
	"github.com/magabrotheeeer/movie-stream-client/internal/session"
)

// ErrSessionInitializing возвращается, пока начальная гидрация сессии
// не завершилась. Потребитель показывает нейтральное состояние загрузки
// и не принимает решения о доступе.
var ErrSessionInitializing = errors.New("session is initializing")

// Rule связывает шаблон маршрута с требованием доступа.
// Сегмент вида {name} совпадает с любым непустым сегментом пути.
type Rule struct {
	Pattern     string
	Requirement access.Requirement
}

// DefaultTable возвращает таблицу маршрутов клиента.
func DefaultTable() []Rule {
	return []Rule{
		{Pattern: "/", Requirement: access.RequirementNone},
		{Pattern: "/browse", Requirement: access.RequirementNone},
		{Pattern: "/movie/{id}", Requirement: access.RequirementNone},
		{Pattern: "/login", Requirement: access.RequirementNone},
		{Pattern: "/register", Requirement: access.RequirementNone},
		{Pattern: "/404", Requirement: access.RequirementNone},
		{Pattern: "/profile", Requirement: access.RequirementAuth},
		{Pattern: "/plans", Requirement: access.RequirementAuth},
		{Pattern: "/payment", Requirement: access.RequirementAuth},
		{Pattern: "/payment/success", Requirement: access.RequirementAuth},
		{Pattern: "/payment/failure", Requirement: access.RequirementAuth},
		{Pattern: "/payment/receipt/{id}", Requirement: access.RequirementAuth},
		{Pattern: "/admin", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/users", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/movies", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/movies/new", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/movies/{id}/edit", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/subscriptions", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/payments", Requirement: access.RequirementAdmin},
		{Pattern: "/admin/plans", Requirement: access.RequirementAdmin},
	}
}

// Table — таблица маршрутов с разрешением требования по пути.
type Table struct {
	rules []Rule
}

// NewTable создаёт таблицу маршрутов.
func NewTable(rules []Rule) Table {
	return Table{rules: rules}
}

// Resolve возвращает требование доступа для пути. Неизвестный путь ведёт
// на публичную страницу 404, поэтому требование — RequirementNone.
func (t Table) Resolve(path string) access.Requirement {
	for _, rule := range t.rules {
		if matchPattern(rule.Pattern, path) {
			return rule.Requirement
		}
	}
	return access.RequirementNone
}

// matchPattern сопоставляет путь с шаблоном посегментно.
func matchPattern(pattern, path string) bool {
	ps := splitPath(pattern)
	ss := splitPath(path)
	if len(ps) != len(ss) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if ss[i] == "" {
				return false
			}
			continue
		}
		if seg != ss[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// SnapshotProvider отдаёт текущий снимок сессии. Контракт контроллера сессии.
type SnapshotProvider interface {
	Snapshot() session.Snapshot
}

// Guard — охранник маршрутов: связывает таблицу, снимок сессии и шлюз.
type Guard struct {
	table Table
	sess  SnapshotProvider
}

// NewGuard создаёт охранника маршрутов.
func NewGuard(table Table, sess SnapshotProvider) *Guard {
	return &Guard{
		table: table,
		sess:  sess,
	}
}

// Check возвращает решение шлюза для пути. Пока сессия инициализируется,
// возвращается ErrSessionInitializing — решение принимать рано.
func (g *Guard) Check(path string) (access.Decision, error) {
	snap := g.sess.Snapshot()
	if snap.Status == session.StatusInitializing {
		return access.Decision{}, ErrSessionInitializing
	}
	return access.EvaluateRoute(g.table.Resolve(path), snap, path), nil
}
