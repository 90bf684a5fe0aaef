package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// movieRequest — структура входных данных для создания и обновления фильма.
type movieRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ReleaseYear int     `json:"release_year" validate:"required,gt=1887"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Genre       string  `json:"genre" validate:"required"`
	Director    string  `json:"director"`
	Cast        string  `json:"cast"`
	PosterURL   string  `json:"poster_url"`
	VideoURL    string  `json:"video_url"`
	Rating      float64 `json:"rating"`
}

func (req movieRequest) toModel() models.Movie {
	return models.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		Duration:    req.Duration,
		Genre:       req.Genre,
		Director:    req.Director,
		Cast:        req.Cast,
		PosterURL:   req.PosterURL,
		VideoURL:    req.VideoURL,
		Rating:      req.Rating,
	}
}

func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleListMovies возвращает страницу каталога с фильтрами search и genre.
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	movies := s.store.listMovies(limit, offset, q.Get("search"), q.Get("genre"))
	render.JSON(w, r, OKWithData(movies))
}

// handleGetMovie возвращает фильм по идентификатору.
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid movie id"))
		return
	}
	movie, found := s.store.movieByID(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("movie not found"))
		return
	}
	render.JSON(w, r, OKWithData(movie))
}

// handleTranscodingStatus возвращает статус фоновой обработки видео.
// Каждый опрос продвигает детерминированный счётчик прогресса.
func (s *Server) handleTranscodingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid movie id"))
		return
	}
	status, found := s.store.pollTranscoding(id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("movie not found"))
		return
	}
	render.JSON(w, r, OKWithData(status))
}

// handleCreateMovie добавляет фильм в каталог.
func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleCreateMovie"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req movieRequest
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

	movie := s.store.addMovie(req.toModel())
	log.Info("movie created", slog.Int("id", movie.ID))
	render.JSON(w, r, OKWithData(movie))
}

// handleUpdateMovie обновляет фильм каталога.
func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleUpdateMovie"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := movieID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid movie id"))
		return
	}
	var req movieRequest
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

	movie, found := s.store.updateMovie(id, req.toModel())
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("movie not found"))
		return
	}
	log.Info("movie updated", slog.Int("id", movie.ID))
	render.JSON(w, r, OKWithData(movie))
}

// handleDeleteMovie удаляет фильм из каталога.
func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid movie id"))
		return
	}
	if !s.store.deleteMovie(id) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("movie not found"))
		return
	}
	render.JSON(w, r, OKWithData(map[string]int{"deleted": id}))
}
