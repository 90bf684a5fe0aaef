// Package forms реализует проверку полей пользовательских форм: вход,
// регистрация и редактирование фильма администратором.
//
// Форматная валидация — забота слоя форм, а не контроллера сессии:
// контроллер получает уже проверенные строки. Сообщения формируются
// по-полевыми человеко-читаемыми текстами для показа рядом с полями.
package forms

import (
	"fmt"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// LoginForm — поля формы входа.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// RegisterForm — поля формы регистрации.
type RegisterForm struct {
	Username string `validate:"required,alphanum,min=3,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// MovieForm — поля административной формы фильма.
type MovieForm struct {
	Title       string  `validate:"required,max=200"`
	Description string  `validate:"required"`
	ReleaseYear int     `validate:"required,gte=1888"`
	Duration    int     `validate:"required,gt=0"`
	Genre       string  `validate:"required"`
	Rating      float64 `validate:"gte=0,lte=10"`
}

// Validate проверяет форму и возвращает список сообщений о нарушениях.
// Пустой список означает, что форма корректна.
func Validate(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	return Messages(errs)
}

// Messages переводит нарушения валидации в человеко-читаемые тексты.
func Messages(errs validator.ValidationErrors) []string {
	var msgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "alphanum":
			msgs = append(msgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gte", "gt":
			msgs = append(msgs, fmt.Sprintf("field %s is too small", err.Field()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("field %s is too large", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return msgs
}
