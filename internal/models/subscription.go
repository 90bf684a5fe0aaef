package models

import "time"

// SubscriptionStatus — результат проверки доступа к контенту.
// Факт волатильный: клиент запрашивает его заново при каждой проверке
// и никогда не переиспользует предыдущее значение.
type SubscriptionStatus struct {
	HasAccess     bool   `json:"has_access"`               // Есть ли действующая подписка
	DaysRemaining int    `json:"days_remaining,omitempty"` // Сколько дней осталось
	Status        string `json:"status,omitempty"`         // active, expired или none
}

// Plan представляет тарифный план подписки.
type Plan struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int    `json:"price"` // Цена в минимальных единицах валюты
	DurationDays int    `json:"duration_days"`
}

// Subscription представляет оформленную подписку пользователя.
type Subscription struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PlanID    int       `json:"plan_id"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
