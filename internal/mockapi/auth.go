package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/password"
	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
)

// loginRequest — структура входных данных для авторизации.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// registerRequest — структура входных данных для регистрации.
type registerRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// handleLogin аутентифицирует пользователя по email и паролю,
// возвращает bearer-токен.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleLogin"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, ValidationError(err.(validator.ValidationErrors)))
		return
	}

	rec, ok := s.store.userByEmail(req.Email)
	if !ok || password.CompareHash(rec.PasswordHash, req.Password) != nil {
		log.Info("login rejected", slog.String("email", req.Email))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("incorrect email or password"))
		return
	}
	if !rec.IsActive {
		log.Info("login rejected for inactive user", slog.String("email", req.Email))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("inactive user"))
		return
	}

	token, err := s.jwtMaker.GenerateToken(rec.ID, rec.Email, rec.IsSuperuser)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, Error("internal error"))
		return
	}

	log.Info("login success", slog.String("username", rec.Username))
	render.JSON(w, r, OKWithData(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	}))
}

// handleRegister создаёт новую учётную запись.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleRegister"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if _, exists := s.store.userByEmail(req.Email); exists {
		log.Info("duplicate email", slog.String("email", req.Email))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, Error("the user with this email already exists in the system"))
		return
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, Error("internal error"))
		return
	}
	rec := s.store.addUser(req.Username, req.Email, hash, false)

	log.Info("user registered", slog.String("username", rec.Username))
	render.JSON(w, r, OKWithData(rec.User))
}

// handleCurrentUser возвращает профиль аутентифицированного пользователя.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("user identification missing"))
		return
	}
	render.JSON(w, r, OKWithData(user))
}
