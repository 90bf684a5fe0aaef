package mockapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movie-stream-client/internal/config"
	"github.com/magabrotheeeer/movie-stream-client/internal/lib/jwt"
)

// Server — мок-бэкенд стриминга.
type Server struct {
	log      *slog.Logger
	store    *store
	jwtMaker jwt.Maker
	validate *validator.Validate
	router   chi.Router
}

// New создаёт мок-бэкенд с засеянными данными и собранным роутером.
func New(log *slog.Logger, cfg config.MockServer) *Server {
	s := &Server{
		log:      log,
		store:    newStore(),
		jwtMaker: jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		validate: validator.New(),
	}
	s.seed()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(latencyMiddleware(cfg.Latency))
	router.Use(rateLimitMiddleware(log))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Get("/movies", s.handleListMovies)
		r.Get("/movies/{id}", s.handleGetMovie)
		r.Get("/subscriptions/plans", s.handleListPlans)

		r.Group(func(r chi.Router) {
			r.Use(s.jwtMiddleware)
			r.Get("/users/me", s.handleCurrentUser)
			r.Get("/movies/{id}/transcoding-status", s.handleTranscodingStatus)
			r.Get("/subscriptions/check-access", s.handleCheckAccess)
			r.Post("/payments", s.handleCreatePayment)
			r.Get("/payments", s.handleListPayments)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.jwtMiddleware)
			r.Use(s.adminMiddleware)
			r.Post("/movies", s.handleCreateMovie)
			r.Put("/movies/{id}", s.handleUpdateMovie)
			r.Delete("/movies/{id}", s.handleDeleteMovie)
			r.Get("/users", s.handleListUsers)
			r.Put("/users/{id}", s.handleUpdateUser)
			r.Delete("/users/{id}", s.handleDeleteUser)
			r.Get("/subscriptions", s.handleListSubscriptions)
		})
	})
	s.router = router
	return s
}

// Handler возвращает корневой HTTP-обработчик мок-бэкенда.
func (s *Server) Handler() http.Handler {
	return s.router
}
