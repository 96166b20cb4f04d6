// Package profile реализует репозиторий профилей с двумя бэкендами:
// локальным (синхронное хранилище в процессе) и удаленным (HTTP API
// с bearer-авторизацией). Выбор бэкенда - вопрос конфигурации,
// путь кода для каждой операции один.
package profile

import (
	"context"
	"errors"

	"eventhub/internal/models"
	"eventhub/internal/validation"
)

// Ошибки репозитория профилей
var (
	// ErrNotFound - учетная запись не найдена
	ErrNotFound = errors.New("profile not found")
	// ErrUnauthorized - сессия недействительна; вызывающий код обязан
	// завершить сессию и отправить пользователя на вход
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidationRejected - сервер отклонил данные профиля
	ErrValidationRejected = errors.New("validation rejected")
	// ErrTransient - временная ошибка сети или хранилища; буфер
	// редактирования при этом не теряется
	ErrTransient = errors.New("transient error")
	// ErrNoAccount - учетная запись не зарегистрирована
	ErrNoAccount = errors.New("no account found")
	// ErrBadCredentials - неверный email или пароль
	ErrBadCredentials = errors.New("invalid email or password")
)

// RepositoryInterface определяет контракт репозитория профилей
type RepositoryInterface interface {
	GetProfile(ctx context.Context, role, id string) (*models.Profile, error)
	SaveProfile(ctx context.Context, role, id string, data validation.ValidatedData) (*models.Profile, error)
}

// profileFromData собирает профиль роли из проверенных данных формы
func profileFromData(role string, data validation.ValidatedData) *models.Profile {
	p := &models.Profile{Role: role}
	switch role {
	case models.RoleStaff:
		p.Staff = &models.StaffProfile{
			Position:    data["position"],
			Gender:      data["gender"],
			PhoneNumber: data["phoneNumber"],
			Address:     data["address"],
		}
	case models.RoleAttendee:
		p.Attendee = &models.AttendeeProfile{
			PhoneNumber: data["phoneNumber"],
			DateOfBirth: data["dateOfBirth"],
			Gender:      data["gender"],
			Country:     data["country"],
			City:        data["city"],
		}
	}
	return p
}
