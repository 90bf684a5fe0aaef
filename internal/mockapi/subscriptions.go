package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// handleCheckAccess возвращает свежий статус подписки текущего пользователя.
// Суперпользователь всегда с доступом — подписка ему не нужна.
func (s *Server) handleCheckAccess(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("user identification missing"))
		return
	}

	if user.IsSuperuser {
		render.JSON(w, r, OKWithData(models.SubscriptionStatus{
			HasAccess: true,
			Status:    "active",
		}))
		return
	}

	sub, found := s.store.subscriptionByUser(user.ID)
	now := time.Now().UTC()
	if !found {
		render.JSON(w, r, OKWithData(models.SubscriptionStatus{
			HasAccess: false,
			Status:    "none",
		}))
		return
	}
	if sub.EndDate.Before(now) {
		render.JSON(w, r, OKWithData(models.SubscriptionStatus{
			HasAccess: false,
			Status:    "expired",
		}))
		return
	}
	render.JSON(w, r, OKWithData(models.SubscriptionStatus{
		HasAccess:     true,
		DaysRemaining: int(sub.EndDate.Sub(now).Hours() / 24),
		Status:        "active",
	}))
}

// handleListPlans возвращает тарифные планы.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, OKWithData(s.store.listPlans()))
}

// handleListSubscriptions возвращает все подписки. Только для администратора.
func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, OKWithData(s.store.listSubscriptions()))
}
