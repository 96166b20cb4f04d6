package models

// AttendeeProfile представляет профиль участника.
// Все поля необязательные; пустое значение отображается как "Not provided".
type AttendeeProfile struct {
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	DateOfBirth string `json:"dateOfBirth" db:"date_of_birth"`
	Gender      string `json:"gender" db:"gender"`
	Country     string `json:"country" db:"country"`
	City        string `json:"city" db:"city"`
}

// StaffProfile представляет профиль сотрудника
type StaffProfile struct {
	Position    string `json:"position" db:"position"`
	Gender      string `json:"gender" db:"gender"`
	PhoneNumber string `json:"phoneNumber" db:"phone_number"`
	Address     string `json:"address" db:"address"`
}

// Profile объединяет профиль любой роли. Заполнено ровно одно из полей
// в соответствии с ролью владельца.
type Profile struct {
	Role     string           `json:"role"`
	Attendee *AttendeeProfile `json:"attendee,omitempty"`
	Staff    *StaffProfile    `json:"staff,omitempty"`
}

// EmptyProfile возвращает профиль по умолчанию для роли: все поля пустые.
// Отсутствующий профиль не является ошибкой.
func EmptyProfile(role string) *Profile {
	p := &Profile{Role: role}
	switch role {
	case RoleAttendee:
		p.Attendee = &AttendeeProfile{}
	case RoleStaff:
		p.Staff = &StaffProfile{}
	}
	return p
}
