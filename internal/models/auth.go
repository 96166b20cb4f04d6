package models

// LoginRequest представляет запрос на авторизацию
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse представляет ответ с токеном авторизации
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterStaffRequest представляет запрос на публичную регистрацию сотрудника
type RegisterStaffRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Position    string `json:"position" binding:"required,oneof=CHECKER SUPERVISOR SUPPORT"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Gender      string `json:"gender" binding:"required"`
	Address     string `json:"address" binding:"omitempty,min=5"`
}

// RegisterAttendeeRequest представляет запрос на публичную регистрацию участника
type RegisterAttendeeRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty"`
	Gender      string `json:"gender" binding:"required"`
}

// RegisterResponse представляет ответ на запрос регистрации
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserRef содержит данные учетной записи внутри записи профиля
type UserRef struct {
	Email string `json:"email"`
}

// StaffRecord представляет запись сотрудника, отдаваемую API
type StaffRecord struct {
	ID          string  `json:"id"`
	FullName    string  `json:"fullName"`
	Position    string  `json:"position"`
	Gender      string  `json:"gender"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     string  `json:"address,omitempty"`
	User        UserRef `json:"user"`
}

// AttendeeRecord представляет запись участника, отдаваемую API
type AttendeeRecord struct {
	ID          string  `json:"id"`
	FullName    string  `json:"fullName"`
	PhoneNumber string  `json:"phoneNumber"`
	DateOfBirth string  `json:"dateOfBirth"`
	Gender      string  `json:"gender"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	User        UserRef `json:"user"`
}

// StaffRecordResponse оборачивает запись сотрудника в конверт data
type StaffRecordResponse struct {
	Data StaffRecord `json:"data"`
}

// AttendeeRecordResponse оборачивает запись участника в конверт data
type AttendeeRecordResponse struct {
	Data AttendeeRecord `json:"data"`
}

// UpdateStaffProfileRequest представляет запрос на обновление профиля сотрудника
type UpdateStaffProfileRequest struct {
	Position    string `json:"position" binding:"required,oneof=CHECKER SUPERVISOR SUPPORT"`
	Gender      string `json:"gender" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Address     string `json:"address" binding:"omitempty,min=5"`
}

// UpdateAttendeeProfileRequest представляет запрос на обновление профиля участника
type UpdateAttendeeProfileRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"omitempty"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty"`
	Gender      string `json:"gender" binding:"omitempty"`
	Country     string `json:"country" binding:"omitempty"`
	City        string `json:"city" binding:"omitempty"`
}
