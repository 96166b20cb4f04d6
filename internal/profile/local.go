package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"eventhub/internal/models"
	"eventhub/internal/storage"
	"eventhub/internal/utils"
	"eventhub/internal/validation"

	"github.com/google/uuid"
)

// localAccount представляет локальную учетную запись.
// Пароль хранится только в виде bcrypt хеша.
type localAccount struct {
	Identity     models.Identity `json:"identity"`
	PasswordHash string          `json:"passwordHash"`
}

// Local реализует репозиторий профилей поверх локального хранилища.
// Сетевых ошибок здесь нет; поврежденная запись трактуется как
// отсутствие профиля и не роняет страницу.
type Local struct {
	storage storage.Storage
}

// NewLocal создает локальный репозиторий профилей
func NewLocal(st storage.Storage) *Local {
	return &Local{storage: st}
}

// profileKey возвращает ключ записи профиля для роли
func profileKey(role string) storage.Key {
	return storage.Key{Role: role, Kind: storage.KindProfile}
}

// accountKey возвращает ключ учетной записи для роли
func accountKey(role string) storage.Key {
	return storage.Key{Role: role, Kind: storage.KindUser}
}

// GetProfile возвращает профиль пользователя. Отсутствующий или
// поврежденный профиль не ошибка: возвращается пустой профиль,
// поля которого отображаются как "Not provided".
func (l *Local) GetProfile(ctx context.Context, role, id string) (*models.Profile, error) {
	data, ok := l.storage.Get(profileKey(role))
	if !ok {
		return models.EmptyProfile(role), nil
	}

	var stored struct {
		OwnerID string          `json:"ownerId"`
		Profile *models.Profile `json:"profile"`
	}
	if err := json.Unmarshal(data, &stored); err != nil || stored.Profile == nil {
		// Поврежденная запись равносильна отсутствующей
		return models.EmptyProfile(role), nil
	}

	if stored.OwnerID != id {
		return models.EmptyProfile(role), nil
	}

	return stored.Profile, nil
}

// SaveProfile сохраняет проверенные данные профиля
func (l *Local) SaveProfile(ctx context.Context, role, id string, data validation.ValidatedData) (*models.Profile, error) {
	p := profileFromData(role, data)

	blob, err := json.Marshal(struct {
		OwnerID string          `json:"ownerId"`
		Profile *models.Profile `json:"profile"`
	}{OwnerID: id, Profile: p})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal profile: %v", ErrTransient, err)
	}

	if err := l.storage.Set(profileKey(role), blob); err != nil {
		return nil, fmt.Errorf("%w: failed to store profile: %v", ErrTransient, err)
	}

	return p, nil
}

// Register создает локальную учетную запись с хешированным паролем
// и возвращает идентичность нового пользователя
func (l *Local) Register(role string, data validation.ValidatedData) (*models.Identity, error) {
	passwordHash, err := utils.HashPassword(data["password"])
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := models.Identity{
		ID:        uuid.New().String(),
		Role:      role,
		FirstName: data["firstName"],
		LastName:  data["lastName"],
		Email:     data["email"],
	}

	account := localAccount{
		Identity:     identity,
		PasswordHash: passwordHash,
	}

	blob, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	if err := l.storage.Set(accountKey(role), blob); err != nil {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}

	return &identity, nil
}

// Login проверяет учетные данные локальной записи.
// Отсутствие записи и несовпадение пароля различаются, чтобы форма
// могла показать ошибку у нужного поля.
func (l *Local) Login(role, email, password string) (*models.Identity, error) {
	data, ok := l.storage.Get(accountKey(role))
	if !ok {
		return nil, ErrNoAccount
	}

	var account localAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, ErrNoAccount
	}

	if account.Identity.Email != email {
		return nil, ErrBadCredentials
	}

	if err := utils.CheckPassword(password, account.PasswordHash); err != nil {
		return nil, ErrBadCredentials
	}

	return &account.Identity, nil
}
