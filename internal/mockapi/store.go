package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// userRecord — учётная запись мок-бэкенда вместе с хэшем пароля.
// Наружу хэш не отдаётся.
type userRecord struct {
	models.User
	PasswordHash string
}

// store хранит данные мок-бэкенда в памяти. Все операции под мьютексом:
// сервер обслуживает запросы конкурентно.
type store struct {
	mu sync.Mutex

	users      map[int]*userRecord
	nextUserID int

	movies      map[int]*models.Movie
	nextMovieID int
	// transcodePolls считает опросы статуса по каждому фильму:
	// после processingPolls опросов статус PROCESSING переходит в COMPLETE.
	transcodePolls map[int]int

	plans []models.Plan

	subs      map[int]*models.Subscription // ключ — ID пользователя
	nextSubID int

	payments []models.Payment
}

// processingPolls — сколько опросов фильм остаётся в статусе PROCESSING.
const processingPolls = 3

func newStore() *store {
	return &store{
		users:          make(map[int]*userRecord),
		nextUserID:     1,
		movies:         make(map[int]*models.Movie),
		nextMovieID:    1,
		transcodePolls: make(map[int]int),
		subs:           make(map[int]*models.Subscription),
		nextSubID:      1,
	}
}

func (s *store) addUser(username, email, passwordHash string, isSuperuser bool) userRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	rec := &userRecord{
		User: models.User{
			ID:          s.nextUserID,
			Username:    username,
			Email:       email,
			IsActive:    true,
			IsSuperuser: isSuperuser,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		PasswordHash: passwordHash,
	}
	s.users[rec.ID] = rec
	s.nextUserID++
	return *rec
}

// userByEmail возвращает копию записи: указатели на данные под мьютексом
// наружу не выходят, иначе updateUser гонялся бы с читателями.
func (s *store) userByEmail(email string) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.Email, email) {
			return *rec, true
		}
	}
	return userRecord{}, false
}

func (s *store) userByID(id int) (userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return userRecord{}, false
	}
	return *rec, true
}

func (s *store) listUsers(limit, offset int) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []models.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.users[id].User)
	}
	return out
}

func (s *store) updateUser(id int, isActive, isSuperuser *bool) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	if isActive != nil {
		rec.IsActive = *isActive
	}
	if isSuperuser != nil {
		rec.IsSuperuser = *isSuperuser
	}
	rec.UpdatedAt = time.Now().UTC()
	user := rec.User
	return &user, true
}

func (s *store) deleteUser(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	delete(s.subs, id)
	return true
}

func (s *store) addMovie(m models.Movie) models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextMovieID
	s.nextMovieID++
	if m.TranscodingStatus == "" {
		m.TranscodingStatus = models.TranscodingProcessing
	}
	s.movies[m.ID] = &m
	return m
}

func (s *store) movieByID(id int) (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return models.Movie{}, false
	}
	return *m, true
}

func (s *store) listMovies(limit, offset int, search, genre string) []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.movies))
	for id := range s.movies {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []models.Movie
	skipped := 0
	for _, id := range ids {
		m := s.movies[id]
		if search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(search)) {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre)) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, *m)
	}
	return out
}

func (s *store) updateMovie(id int, m models.Movie) (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.movies[id]
	if !ok {
		return models.Movie{}, false
	}
	m.ID = id
	if m.TranscodingStatus == "" {
		m.TranscodingStatus = existing.TranscodingStatus
	}
	s.movies[id] = &m
	return m, true
}

func (s *store) deleteMovie(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return false
	}
	delete(s.movies, id)
	delete(s.transcodePolls, id)
	return true
}

// pollTranscoding возвращает статус транскодировки и продвигает счётчик
// опросов: фильм в статусе PROCESSING становится COMPLETE после
// processingPolls опросов. Детерминированность важна для наблюдателя.
func (s *store) pollTranscoding(id int) (models.TranscodingStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return models.TranscodingStatus{}, false
	}
	if m.TranscodingStatus == models.TranscodingProcessing {
		s.transcodePolls[id]++
		if s.transcodePolls[id] >= processingPolls {
			m.TranscodingStatus = models.TranscodingComplete
		}
	}
	status := models.TranscodingStatus{
		MovieID:      m.ID,
		Status:       m.TranscodingStatus,
		IsTranscoded: m.TranscodingStatus == models.TranscodingComplete,
	}
	if status.IsTranscoded {
		status.StreamingURL = m.VideoURL
	}
	return status, true
}

func (s *store) listPlans() []models.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *store) planByID(id int) (models.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}

func (s *store) subscriptionByUser(userID int) (models.Subscription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[userID]
	if !ok {
		return models.Subscription{}, false
	}
	return *sub, true
}

// activateSubscription оформляет или продлевает подписку пользователя
// на срок плана, начиная с текущего момента.
func (s *store) activateSubscription(userID int, plan models.Plan) models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	sub := &models.Subscription{
		ID:        s.nextSubID,
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    "active",
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
	}
	if existing, ok := s.subs[userID]; ok && existing.EndDate.After(now) {
		sub.EndDate = existing.EndDate.AddDate(0, 0, plan.DurationDays)
	}
	s.nextSubID++
	s.subs[userID] = sub
	return *sub
}

func (s *store) listSubscriptions() []models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) addPayment(p models.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
}

func (s *store) listPayments(userID int) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Payment
	for _, p := range s.payments {
		if userID == 0 || p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}
