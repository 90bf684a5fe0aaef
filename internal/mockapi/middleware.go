package mockapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ аутентифицированного пользователя в контексте запроса.
const UserKey Key = "user"

// latencyMiddleware задерживает каждый ответ на фиксированное время —
// имитация сетевой задержки реального бэкенда.
func latencyMiddleware(latency time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if latency > 0 {
				select {
				case <-time.After(latency):
				case <-r.Context().Done():
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware ограничивает частоту запросов к мок-бэкенду.
func rateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(50, 100)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// jwtMiddleware проверяет JWT в заголовке Authorization, находит пользователя
// и добавляет его в контекст запроса. При любой ошибке — 401 Unauthorized.
func (s *Server) jwtMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "mockapi.jwtMiddleware"
		log := s.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Error("missing or invalid authorization header")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, Error("missing or invalid authorization header"))
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := s.jwtMaker.ParseToken(tokenStr)
		if err != nil {
			log.Error("invalid or expired token", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, Error("invalid or expired token"))
			return
		}
		rec, ok := s.store.userByID(claims.UserID)
		if !ok || !rec.IsActive {
			log.Error("user not found or inactive")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, Error("invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, rec.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware пропускает только суперпользователей.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserKey).(models.User)
		if !ok || !user.IsSuperuser {
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, Error("admin privileges required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser достаёт пользователя из контекста запроса.
func currentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(UserKey).(models.User)
	return user, ok
}
