// Package api реализует REST-клиент к бэкенду стриминга: аутентификация,
// каталог фильмов, проверка подписки, платежи и административные операции.
//
// Ошибки бэкенда приводятся к фиксированной таксономии sentinel-ошибок,
// чтобы вызывающий код мог различать «неверные учётные данные»,
// «протухший токен», «нет прав» и «бэкенд недоступен» через errors.Is.
package api

import (
	"errors"
	"fmt"
)

// Таксономия ошибок клиента.
var (
	// ErrInvalidCredentials — неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken — токен протух, отозван или повреждён.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrDuplicateEmail — пользователь с таким email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrValidation — бэкенд отклонил поля запроса.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthorized — операция требует прав администратора.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotFound — запрошенный ресурс не существует.
	ErrNotFound = errors.New("not found")
	// ErrNetwork — бэкенд недоступен или ответил неожиданным статусом.
	// Отличается от «доступа нет»: вызывающий код может предложить повтор.
	ErrNetwork = errors.New("backend unreachable")
)

// statusError переводит HTTP-статус ответа в sentinel-ошибку таксономии.
// Текст ошибки бэкенда сохраняется в обёртке для показа пользователю.
func statusError(code int, msg string) error {
	var base error
	switch code {
	case 401:
		base = ErrInvalidToken
	case 403:
		base = ErrNotAuthorized
	case 404:
		base = ErrNotFound
	case 409:
		base = ErrDuplicateEmail
	case 422:
		base = ErrValidation
	default:
		base = ErrNetwork
	}
	if msg == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, msg)
}
