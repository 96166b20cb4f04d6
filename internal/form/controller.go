// Package form реализует состояние страницы профиля: просмотр,
// редактирование, проверка и сохранение. Контроллер связывает
// схемы валидации, репозиторий профилей и хранилище сессий.
package form

import (
	"context"
	"errors"
	"sync"

	"eventhub/internal/models"
	"eventhub/internal/profile"
	"eventhub/internal/session"
	"eventhub/internal/validation"
)

// State представляет состояние формы
type State string

// Состояния формы. Проверка данных происходит внутри Submit
// и отдельным состоянием не является.
const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

// Сообщения об ошибках формы
const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgSaveFailed     = "Could not save your profile. Please try again."
)

// Controller управляет формой редактирования профиля одной страницы
type Controller struct {
	mu sync.Mutex

	kind       validation.FormKind
	role       string
	identityID string
	repo       profile.RepositoryInterface
	sessions   session.StoreInterface

	state        State
	profile      *models.Profile
	buffer       map[string]string
	fieldErrors  validation.FieldErrors
	generalError string

	// submitSeq защищает от применения устаревшего ответа:
	// применяется только ответ последней отправки
	submitSeq uint64
	closed    bool
}

// NewController создает контроллер формы профиля
func NewController(kind validation.FormKind, role, identityID string, repo profile.RepositoryInterface, sessions session.StoreInterface) *Controller {
	return &Controller{
		kind:       kind,
		role:       role,
		identityID: identityID,
		repo:       repo,
		sessions:   sessions,
		state:      StateViewing,
		profile:    models.EmptyProfile(role),
		buffer:     make(map[string]string),
	}
}

// Load загружает профиль для отображения. Доступ проверяется по сессии:
// несовпадение роли или идентификатора равносильно отсутствию авторизации.
func (c *Controller) Load(ctx context.Context) error {
	if !c.sessions.AuthorizeAccess(c.role, c.identityID) {
		return profile.ErrUnauthorized
	}

	p, err := c.repo.GetProfile(ctx, c.role, c.identityID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			// Отсутствующий профиль не блокирует страницу
			p = models.EmptyProfile(c.role)
		} else if errors.Is(err, profile.ErrUnauthorized) {
			c.endSession()
			return err
		} else {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.profile = p
	c.state = StateViewing
	return nil
}

// Edit переводит форму в режим редактирования, заполняя буфер
// текущими значениями профиля
func (c *Controller) Edit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateViewing {
		return
	}

	c.buffer = bufferFromProfile(c.profile)
	c.fieldErrors = nil
	c.generalError = ""
	c.state = StateEditing
}

// SetField обновляет значение поля в буфере редактирования
// и снимает ошибку с этого поля
func (c *Controller) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEditing {
		return
	}

	c.buffer[name] = value
	delete(c.fieldErrors, name)
}

// Cancel отменяет редактирование без сохранения
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateEditing {
		return
	}

	c.buffer = make(map[string]string)
	c.fieldErrors = nil
	c.generalError = ""
	c.state = StateViewing
}

// Submit проверяет буфер и сохраняет профиль. Повторная отправка
// во время сохранения игнорируется: репозиторий вызывается ровно
// один раз на отправку.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if c.state != StateEditing || c.closed {
		c.mu.Unlock()
		return nil
	}

	// Проверяем данные формы
	data, fieldErrors := validation.Validate(c.kind, c.buffer)
	if fieldErrors != nil {
		c.fieldErrors = fieldErrors
		c.generalError = ""
		c.mu.Unlock()
		return nil
	}

	c.fieldErrors = nil
	c.generalError = ""
	c.state = StateSaving
	c.submitSeq++
	seq := c.submitSeq
	c.mu.Unlock()

	saved, err := c.repo.SaveProfile(ctx, c.role, c.identityID, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Устаревший ответ не применяется
	if c.closed || seq != c.submitSeq {
		return nil
	}

	if err != nil {
		if errors.Is(err, profile.ErrUnauthorized) {
			// Сессия недействительна: завершаем ее и отправляем на вход
			c.state = StateEditing
			c.generalError = msgSessionExpired
			_ = c.sessions.EndSession()
			return err
		}

		// Буфер редактирования сохраняется, пользователь может повторить
		c.state = StateEditing
		c.generalError = msgSaveFailed
		return err
	}

	c.profile = saved
	c.buffer = make(map[string]string)
	c.state = StateViewing
	return nil
}

// Close помечает форму закрытой: поздние ответы не применяются
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
}

// State возвращает текущее состояние формы
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Profile возвращает отображаемый профиль
func (c *Controller) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.profile
}

// FieldErrors возвращает ошибки по полям после последней проверки
func (c *Controller) FieldErrors() validation.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fieldErrors
}

// GeneralError возвращает общую ошибку формы
func (c *Controller) GeneralError() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generalError
}

// Field возвращает значение поля из буфера редактирования
func (c *Controller) Field(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.buffer[name]
}

// endSession завершает сессию без удержания мьютекса контроллера
func (c *Controller) endSession() {
	_ = c.sessions.EndSession()
}

// bufferFromProfile заполняет буфер редактирования значениями профиля
func bufferFromProfile(p *models.Profile) map[string]string {
	buffer := make(map[string]string)
	if p == nil {
		return buffer
	}

	switch {
	case p.Staff != nil:
		buffer["position"] = p.Staff.Position
		buffer["gender"] = p.Staff.Gender
		buffer["phoneNumber"] = p.Staff.PhoneNumber
		buffer["address"] = p.Staff.Address
	case p.Attendee != nil:
		buffer["phoneNumber"] = p.Attendee.PhoneNumber
		buffer["dateOfBirth"] = p.Attendee.DateOfBirth
		buffer["gender"] = p.Attendee.Gender
		buffer["country"] = p.Attendee.Country
		buffer["city"] = p.Attendee.City
	}

	return buffer
}
