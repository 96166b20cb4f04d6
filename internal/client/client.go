// Package client собирает клиентское ядро: хранилище, сессии,
// репозиторий профилей и контроллеры форм. Бэкенд (локальный или
// удаленный) выбирается конфигурацией, путь кода для каждой операции один.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"eventhub/internal/config"
	"eventhub/internal/form"
	"eventhub/internal/models"
	"eventhub/internal/profile"
	"eventhub/internal/session"
	"eventhub/internal/storage"
	"eventhub/internal/validation"
)

// Сообщения об ошибках входа
const (
	msgNoAccount      = "No account found. Please register first."
	msgBadCredentials = "Invalid email or password"
	msgEmailTaken     = "An account with this email already exists"
)

// Client предоставляет операции клиентского ядра
type Client struct {
	sessions *session.Store
	repo     profile.RepositoryInterface

	local  *profile.Local
	remote *profile.Remote
}

// New создает клиент согласно конфигурации
func New(cfg *config.ClientConfig) (*Client, error) {
	var st storage.Storage
	if cfg.StorageDir != "" {
		fileStorage, err := storage.NewFile(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage: %w", err)
		}
		st = fileStorage
	} else {
		st = storage.NewMemory()
	}

	sessions := session.NewStore(st)

	c := &Client{sessions: sessions}

	switch cfg.Backend {
	case config.BackendRemote:
		c.remote = profile.NewRemote(
			cfg.APIBaseURL,
			http.DefaultClient,
			func() string {
				if sess := sessions.CurrentSession(); sess != nil {
					return sess.Token
				}
				return ""
			},
			// Ответ 401 обязан завершать сессию
			func() { _ = sessions.EndSession() },
		)
		c.repo = c.remote
	case config.BackendLocal:
		c.local = profile.NewLocal(st)
		c.repo = c.local
	default:
		return nil, fmt.Errorf("unknown client backend: %q", cfg.Backend)
	}

	return c, nil
}

// Sessions возвращает хранилище сессий
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// Repository возвращает репозиторий профилей активного бэкенда
func (c *Client) Repository() profile.RepositoryInterface {
	return c.repo
}

// Login проверяет форму входа и авторизует пользователя.
// При ошибке учетных данных сессия не создается, а ошибка
// привязывается к соответствующему полю формы.
func (c *Client) Login(ctx context.Context, role, email, password string) (*models.Identity, validation.FieldErrors, error) {
	if !models.ValidRole(role) {
		return nil, nil, fmt.Errorf("unknown role: %q", role)
	}

	data, fieldErrors := validation.Validate(validation.FormLogin, map[string]string{
		"email":    email,
		"password": password,
	})
	if fieldErrors != nil {
		return nil, fieldErrors, nil
	}

	var identity *models.Identity
	var token string
	var err error

	if c.remote != nil {
		identity, token, err = c.remote.Login(ctx, role, data["email"], data["password"])
	} else {
		identity, err = c.local.Login(role, data["email"], data["password"])
	}

	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNoAccount):
			return nil, validation.FieldErrors{"email": msgNoAccount}, nil
		case errors.Is(err, profile.ErrBadCredentials), errors.Is(err, profile.ErrUnauthorized):
			return nil, validation.FieldErrors{"password": msgBadCredentials}, nil
		}
		return nil, nil, err
	}

	if err := c.sessions.StartSession(identity, token); err != nil {
		return nil, nil, err
	}

	return identity, nil, nil
}

// Register проверяет форму регистрации, создает учетную запись,
// сохраняет профиль и открывает сессию
func (c *Client) Register(ctx context.Context, role string, input map[string]string) (*models.Identity, validation.FieldErrors, error) {
	if !models.ValidRole(role) {
		return nil, nil, fmt.Errorf("unknown role: %q", role)
	}

	kind := validation.FormAttendeeRegister
	if role == models.RoleStaff {
		kind = validation.FormStaffRegister
	}

	data, fieldErrors := validation.Validate(kind, input)
	if fieldErrors != nil {
		return nil, fieldErrors, nil
	}

	if c.remote != nil {
		if err := c.remote.Register(ctx, role, data); err != nil {
			if errors.Is(err, profile.ErrValidationRejected) {
				return nil, validation.FieldErrors{"email": msgEmailTaken}, nil
			}
			return nil, nil, err
		}

		// Сервер подтвердил регистрацию; входим с теми же учетными данными
		return c.Login(ctx, role, data["email"], data["password"])
	}

	identity, err := c.local.Register(role, data)
	if err != nil {
		return nil, nil, err
	}

	if _, err := c.local.SaveProfile(ctx, role, identity.ID, data); err != nil {
		return nil, nil, err
	}

	if err := c.sessions.StartSession(identity, ""); err != nil {
		return nil, nil, err
	}

	return identity, nil, nil
}

// Logout завершает сессию; повторный вызов безопасен
func (c *Client) Logout() error {
	return c.sessions.EndSession()
}

// ProfileForm создает контроллер формы профиля для страницы роли role
// с идентификатором identityID в маршруте
func (c *Client) ProfileForm(role, identityID string) *form.Controller {
	kind := validation.FormAttendeeProfileEdit
	if role == models.RoleStaff {
		kind = validation.FormStaffProfileEdit
	}

	return form.NewController(kind, role, identityID, c.repo, c.sessions)
}
