// Package session управляет сессией авторизованного пользователя.
// Сессия хранится под типизированным ключом своей роли, поэтому
// сессия участника по построению не видит данных сотрудника и наоборот.
package session

import (
	"encoding/json"
	"fmt"

	"eventhub/internal/models"
	"eventhub/internal/storage"
)

// StoreInterface определяет интерфейс хранилища сессий
type StoreInterface interface {
	StartSession(identity *models.Identity, token string) error
	CurrentSession() *models.Session
	EndSession() error
	IsAuthenticated(role string) bool
	AuthorizeAccess(role, identityID string) bool
}

// Store реализует хранилище сессий поверх локального хранилища
type Store struct {
	storage storage.Storage
}

// NewStore создает новое хранилище сессий
func NewStore(st storage.Storage) *Store {
	return &Store{storage: st}
}

// sessionKey возвращает ключ записи сессии для роли
func sessionKey(role string) storage.Key {
	return storage.Key{Role: role, Kind: storage.KindSession}
}

// StartSession сохраняет сессию пользователя, затирая любую предыдущую.
// Токен передается только в режиме серверной авторизации.
func (s *Store) StartSession(identity *models.Identity, token string) error {
	sess := models.Session{
		IdentityID: identity.ID,
		Role:       identity.Role,
		Token:      token,
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Предыдущая сессия другой роли тоже затирается:
	// одновременно активна не более одной сессии
	for _, role := range []string{models.RoleAttendee, models.RoleStaff} {
		if role != identity.Role {
			if err := s.storage.Delete(sessionKey(role)); err != nil {
				return fmt.Errorf("failed to clear stale session: %w", err)
			}
		}
	}

	if err := s.storage.Set(sessionKey(identity.Role), data); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// CurrentSession возвращает активную сессию или nil, если сессии нет.
// Поврежденная запись трактуется как отсутствие сессии.
func (s *Store) CurrentSession() *models.Session {
	for _, role := range []string{models.RoleAttendee, models.RoleStaff} {
		data, ok := s.storage.Get(sessionKey(role))
		if !ok {
			continue
		}

		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}

		if sess.IdentityID == "" || sess.Role != role {
			continue
		}

		return &sess
	}

	return nil
}

// EndSession завершает сессию; повторный вызов безопасен
func (s *Store) EndSession() error {
	for _, role := range []string{models.RoleAttendee, models.RoleStaff} {
		if err := s.storage.Delete(sessionKey(role)); err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}
	}
	return nil
}

// IsAuthenticated сообщает, есть ли активная сессия с указанной ролью.
// Сессия другой роли не дает доступа к чужому пространству имен.
func (s *Store) IsAuthenticated(role string) bool {
	sess := s.CurrentSession()
	return sess != nil && sess.Role == role
}

// AuthorizeAccess проверяет доступ к странице роли role с идентификатором
// identityID в маршруте. Несовпадение идентификатора сессии с маршрутом
// равносильно отсутствию авторизации.
func (s *Store) AuthorizeAccess(role, identityID string) bool {
	sess := s.CurrentSession()
	if sess == nil || sess.Role != role {
		return false
	}
	return sess.IdentityID == identityID
}
