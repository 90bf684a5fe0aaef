// Package models содержит доменные структуры клиента: профиль пользователя,
// фильмы каталога, статус подписки и платежи. Все структуры — снимки данных,
// полученных от REST-бэкенда; клиент никогда не мутирует их по частям,
// а заменяет целиком при повторной загрузке.
package models

import "time"

// User представляет профиль аутентифицированного пользователя.
//
// Снимок неизменяем после получения: при повторном запросе профиля
// структура заменяется целиком.
type User struct {
	ID          int       `json:"id"`           // Идентификатор пользователя
	Username    string    `json:"username"`     // Имя пользователя
	Email       string    `json:"email"`        // Электронная почта
	IsActive    bool      `json:"is_active"`    // Учётная запись активна
	IsSuperuser bool      `json:"is_superuser"` // Признак администратора
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
