package models

import "time"

// Payment представляет платёж за подписку.
//
// Платёжный шлюз — внешний сервис: клиент видит только идентификатор
// заказа и итоговый статус.
type Payment struct {
	ID        string    `json:"id"`       // Идентификатор платежа
	OrderID   string    `json:"order_id"` // Идентификатор заказа в платёжном шлюзе
	UserID    int       `json:"user_id"`
	PlanID    int       `json:"plan_id"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"` // created, captured или failed
	CreatedAt time.Time `json:"created_at"`
}
