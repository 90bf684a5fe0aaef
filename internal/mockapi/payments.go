package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/movie-stream-client/internal/lib/sl"
	"github.com/magabrotheeeer/movie-stream-client/internal/models"
)

// paymentRequest — структура входных данных для создания платежа.
type paymentRequest struct {
	PlanID int `json:"plan_id" validate:"required,gt=0"`
}

// handleCreatePayment создаёт платёж за тарифный план. Платёжный шлюз —
// внешний сервис: мок сразу считает платёж захваченным и активирует
// подписку на срок плана.
func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	const op = "mockapi.handleCreatePayment"
	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := currentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("user identification missing"))
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Error("invalid request body"))
		return
	}
	plan, found := s.store.planByID(req.PlanID)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Error("plan not found"))
		return
	}

	payment := models.Payment{
		ID:        uuid.NewString(),
		OrderID:   "order_" + uuid.NewString(),
		UserID:    user.ID,
		PlanID:    plan.ID,
		Amount:    plan.Price,
		Currency:  "RUB",
		Status:    "captured",
		CreatedAt: time.Now().UTC(),
	}
	s.store.addPayment(payment)
	sub := s.store.activateSubscription(user.ID, plan)

	log.Info("payment captured",
		slog.String("payment_id", payment.ID),
		slog.Int("plan_id", plan.ID),
		slog.Time("subscription_end", sub.EndDate))
	render.JSON(w, r, OKWithData(payment))
}

// handleListPayments возвращает историю платежей текущего пользователя.
func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Error("user identification missing"))
		return
	}
	render.JSON(w, r, OKWithData(s.store.listPayments(user.ID)))
}
