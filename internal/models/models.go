package models

// Роли пользователей
const (
	RoleAttendee = "attendee"
	RoleStaff    = "staff"
)

// Должности сотрудников (закрытый список, значения вне списка отклоняются)
const (
	PositionChecker    = "CHECKER"
	PositionSupervisor = "SUPERVISOR"
	PositionSupport    = "SUPPORT"
)

// ValidRole проверяет, что роль известна системе
func ValidRole(role string) bool {
	return role == RoleAttendee || role == RoleStaff
}

// ValidPosition проверяет, что должность входит в закрытый список
func ValidPosition(position string) bool {
	switch position {
	case PositionChecker, PositionSupervisor, PositionSupport:
		return true
	}
	return false
}

// User представляет учетную запись пользователя в системе
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	PasswordHash string `json:"-" db:"password_hash"` // Не отдаем хеш пароля в JSON
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Identity представляет идентичность авторизованного пользователя
type Identity struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Session представляет активную сессию пользователя.
// Токен присутствует только в режиме серверной авторизации.
type Session struct {
	IdentityID string `json:"identityId"`
	Role       string `json:"role"`
	Token      string `json:"token,omitempty"`
}

// ErrorResponse представляет ошибку API
type ErrorResponse struct {
	Message string `json:"message"`
}
