package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
)

// userUpdateRequest — частичное обновление учётной записи администратором.
type userUpdateRequest struct {
	IsActive    *bool `json:"is_active,omitempty"`
	IsSuperuser *bool `json:"is_superuser,omitempty"`
}

// handleListUsers возвращает страницу списка пользователей.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	render.JSON(w, r, OKWithData(s.store.listUsers(limit, offset)))
}

// handleUpdateUser изменяет флаги учётной записи.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleUpdateUser"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid user id"))
		return
	}
	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid request body"))
		return
	}

	user, found := s.store.updateUser(id, req.IsActive, req.IsSuperuser)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("user not found"))
		return
	}
	log.Info("user updated", slog.Int("id", user.ID))
	render.JSON(w, r, OKWithData(user))
}

// handleDeleteUser удаляет учётную запись вместе с её подпиской.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid user id"))
		return
	}
	if !s.store.deleteUser(id) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("user not found"))
		return
	}
	render.JSON(w, r, OKWithData(map[string]int{"deleted": id}))
}
