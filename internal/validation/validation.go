// Package validation реализует декларативную проверку форм поверх
// go-playground/validator. Функция Validate чистая: никакого I/O,
// на выходе либо нормализованные данные, либо ошибки по полям.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"eventhub/internal/models"

	"github.com/go-playground/validator/v10"
)

// FormKind определяет вид проверяемой формы
type FormKind string

// Виды форм
const (
	FormLogin               FormKind = "login"
	FormStaffRegister       FormKind = "staffRegister"
	FormAttendeeRegister    FormKind = "attendeeRegister"
	FormStaffProfileEdit    FormKind = "staffProfileEdit"
	FormAttendeeProfileEdit FormKind = "attendeeProfileEdit"
)

// FieldErrors сопоставляет имени поля первое нарушенное правило
type FieldErrors map[string]string

// ValidatedData содержит нормализованные значения полей формы
type ValidatedData map[string]string

// phoneRegex описывает допустимый формат телефона: цифры, +, -, пробелы,
// скобки, длина от 7 до 20
var phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]{7,20}$`)

// validate - общий экземпляр валидатора с зарегистрированными правилами
var validate = newValidator()

// newValidator создает валидатор и регистрирует правила phone и position.
// Имена полей в ошибках берутся из json тегов.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	// Должность проверяется по закрытому списку из models
	_ = v.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		return models.ValidPosition(fl.Field().String())
	})

	return v
}

// Схемы форм. Правила повторяют клиентские схемы страниц регистрации
// и редактирования профиля.

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type staffRegisterForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,phone"`
	Address         string `json:"address" validate:"required,min=5"`
	Position        string `json:"position" validate:"required,position"`
	Gender          string `json:"gender" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type attendeeRegisterForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,phone"`
	Gender          string `json:"gender" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type staffProfileEditForm struct {
	Position    string `json:"position" validate:"required,position"`
	Gender      string `json:"gender" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	Address     string `json:"address" validate:"required,min=5"`
}

type attendeeProfileEditForm struct {
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	DateOfBirth string `json:"dateOfBirth" validate:"-"`
	Gender      string `json:"gender" validate:"-"`
	Country     string `json:"country" validate:"-"`
	City        string `json:"city" validate:"-"`
}

// formFields перечисляет поля каждой формы в порядке отображения
var formFields = map[FormKind][]string{
	FormLogin:               {"email", "password"},
	FormStaffRegister:       {"firstName", "lastName", "email", "phoneNumber", "address", "position", "gender", "password", "confirmPassword"},
	FormAttendeeRegister:    {"firstName", "lastName", "email", "phoneNumber", "gender", "password", "confirmPassword"},
	FormStaffProfileEdit:    {"position", "gender", "phoneNumber", "address"},
	FormAttendeeProfileEdit: {"phoneNumber", "dateOfBirth", "gender", "country", "city"},
}

// rawFields перечисляет поля, значения которых не нормализуются:
// пробелы в пароле значимы
var rawFields = map[string]bool{
	"password":        true,
	"confirmPassword": true,
}

// messages сопоставляет полю и нарушенному правилу текст ошибки
var messages = map[string]map[string]string{
	"email": {
		"required": "Email is required",
		"email":    "Invalid email address",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
	},
	"confirmPassword": {
		"required": "Confirm password is required",
		"eqfield":  "Passwords do not match",
	},
	"firstName": {
		"required": "First name is required",
	},
	"lastName": {
		"required": "Last name is required",
	},
	"phoneNumber": {
		"required": "Phone number is required",
		"phone":    "Invalid phone number",
	},
	"address": {
		"required": "Address is required",
		"min":      "Address is too short",
	},
	"position": {
		"required": "Position is required",
		"position": "Position is required",
	},
	"gender": {
		"required": "Gender is required",
	},
}

// Validate проверяет значения формы по схеме. Возвращает либо
// нормализованные данные, либо первую ошибку для каждого поля.
func Validate(kind FormKind, input map[string]string) (ValidatedData, FieldErrors) {
	fields, ok := formFields[kind]
	if !ok {
		return nil, FieldErrors{"form": "Unknown form"}
	}

	// Нормализуем значения: все поля кроме паролей обрезаются по пробелам
	data := make(ValidatedData, len(fields))
	for _, field := range fields {
		value := input[field]
		if !rawFields[field] {
			value = strings.TrimSpace(value)
		}
		data[field] = value
	}

	form := buildForm(kind, data)

	if err := validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, FieldErrors{"form": err.Error()}
		}

		errs := make(FieldErrors, len(verrs))
		for _, ve := range verrs {
			field := ve.Field()
			// Оставляем только первую ошибку для поля
			if _, exists := errs[field]; exists {
				continue
			}
			errs[field] = messageFor(field, ve.Tag())
		}
		return nil, errs
	}

	return data, nil
}

// buildForm собирает структуру схемы из нормализованных значений
func buildForm(kind FormKind, data ValidatedData) interface{} {
	switch kind {
	case FormLogin:
		return loginForm{
			Email:    data["email"],
			Password: data["password"],
		}
	case FormStaffRegister:
		return staffRegisterForm{
			FirstName:       data["firstName"],
			LastName:        data["lastName"],
			Email:           data["email"],
			PhoneNumber:     data["phoneNumber"],
			Address:         data["address"],
			Position:        data["position"],
			Gender:          data["gender"],
			Password:        data["password"],
			ConfirmPassword: data["confirmPassword"],
		}
	case FormAttendeeRegister:
		return attendeeRegisterForm{
			FirstName:       data["firstName"],
			LastName:        data["lastName"],
			Email:           data["email"],
			PhoneNumber:     data["phoneNumber"],
			Gender:          data["gender"],
			Password:        data["password"],
			ConfirmPassword: data["confirmPassword"],
		}
	case FormStaffProfileEdit:
		return staffProfileEditForm{
			Position:    data["position"],
			Gender:      data["gender"],
			PhoneNumber: data["phoneNumber"],
			Address:     data["address"],
		}
	default:
		return attendeeProfileEditForm{
			PhoneNumber: data["phoneNumber"],
			DateOfBirth: data["dateOfBirth"],
			Gender:      data["gender"],
			Country:     data["country"],
			City:        data["city"],
		}
	}
}

// messageFor возвращает текст ошибки для поля и правила
func messageFor(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return "Invalid value"
}
