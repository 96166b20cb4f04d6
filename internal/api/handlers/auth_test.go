package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventhub/internal/models"
	"eventhub/internal/utils"
)

// Мок JWTManager
type MockJWTManager struct {
	mock.Mock
}

func (m *MockJWTManager) GenerateToken(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *MockJWTManager) ValidateToken(tokenString string) (*utils.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.CustomClaims), args.Error(1)
}

// Мок UserQueries
type MockUserQueries struct {
	mock.Mock
}

func (m *MockUserQueries) CreateUser(ctx context.Context, user *models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserQueries) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserQueries) GetUserWithCredentials(ctx context.Context, email, role string) (*models.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserQueries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок ProfileQueries
type MockProfileQueries struct {
	mock.Mock
}

func (m *MockProfileQueries) GetStaffProfile(ctx context.Context, userID string) (*models.StaffProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffProfile), args.Error(1)
}

func (m *MockProfileQueries) UpsertStaffProfile(ctx context.Context, userID string, profile *models.StaffProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}

func (m *MockProfileQueries) GetAttendeeProfile(ctx context.Context, userID string) (*models.AttendeeProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendeeProfile), args.Error(1)
}

func (m *MockProfileQueries) UpsertAttendeeProfile(ctx context.Context, userID string, profile *models.AttendeeProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}

type MockPasswordChecker struct {
	mock.Mock
}

func (m *MockPasswordChecker) CheckPassword(password, hashedPassword string) error {
	args := m.Called(password, hashedPassword)
	return args.Error(0)
}

// Настройка тестового окружения
func setupAuthTest() (*gin.Engine, *MockJWTManager, *MockUserQueries, *MockProfileQueries, *MockPasswordChecker) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	jwtManager := new(MockJWTManager)
	userQueries := new(MockUserQueries)
	profileQueries := new(MockProfileQueries)
	passwordChecker := new(MockPasswordChecker)

	authHandler := NewAuthHandler(jwtManager, userQueries, profileQueries, passwordChecker)

	r.POST("/staff/login", authHandler.Login(models.RoleStaff))
	r.POST("/staff/public-register", authHandler.RegisterStaff)
	r.POST("/attendee/public-register", authHandler.RegisterAttendee)

	return r, jwtManager, userQueries, profileQueries, passwordChecker
}

// doJSON выполняет JSON запрос к тестовому роутеру
func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestLoginSuccess проверяет успешную авторизацию сотрудника
func TestLoginSuccess(t *testing.T) {
	r, jwtManager, userQueries, _, passwordChecker := setupAuthTest()

	user := &models.User{
		ID:           "42",
		Email:        "anna@example.com",
		Role:         models.RoleStaff,
		PasswordHash: "hashed",
	}
	userQueries.On("GetUserWithCredentials", mock.Anything, "anna@example.com", models.RoleStaff).Return(user, nil)
	passwordChecker.On("CheckPassword", "password123", "hashed").Return(nil)
	jwtManager.On("GenerateToken", "42", models.RoleStaff).Return("test-token", nil)

	w := doJSON(r, "POST", "/staff/login", models.LoginRequest{
		Email:    "anna@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.LoginResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "test-token", response.AccessToken)

	jwtManager.AssertExpectations(t)
	userQueries.AssertExpectations(t)
}

// TestLoginWrongPassword проверяет авторизацию с неверным паролем
func TestLoginWrongPassword(t *testing.T) {
	r, jwtManager, userQueries, _, passwordChecker := setupAuthTest()

	user := &models.User{ID: "42", Role: models.RoleStaff, PasswordHash: "hashed-y"}
	userQueries.On("GetUserWithCredentials", mock.Anything, "a@b.com", models.RoleStaff).Return(user, nil)
	passwordChecker.On("CheckPassword", "x", "hashed-y").Return(errors.New("mismatch"))

	w := doJSON(r, "POST", "/staff/login", models.LoginRequest{
		Email:    "a@b.com",
		Password: "x",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response models.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response.Message, "Неверные учетные данные")

	// Токен не выдается
	jwtManager.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

// TestLoginUnknownUser проверяет авторизацию несуществующего пользователя
func TestLoginUnknownUser(t *testing.T) {
	r, _, userQueries, _, _ := setupAuthTest()

	userQueries.On("GetUserWithCredentials", mock.Anything, "nobody@example.com", models.RoleStaff).Return(nil, errors.New("user not found"))

	w := doJSON(r, "POST", "/staff/login", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRegisterStaffSuccess проверяет успешную регистрацию сотрудника
func TestRegisterStaffSuccess(t *testing.T) {
	r, _, userQueries, profileQueries, _ := setupAuthTest()

	userQueries.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	userQueries.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return("test-uuid", nil)
	profileQueries.On("UpsertStaffProfile", mock.Anything, "test-uuid", mock.AnythingOfType("*models.StaffProfile")).Return(nil)

	w := doJSON(r, "POST", "/staff/public-register", models.RegisterStaffRequest{
		FullName:    "Anna Petrova",
		Email:       "new@example.com",
		Password:    "password123",
		Position:    models.PositionChecker,
		PhoneNumber: "+8801712345678",
		Gender:      "female",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.RegisterResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "test-uuid", response.ID)
	assert.Equal(t, models.RoleStaff, response.Role)

	userQueries.AssertExpectations(t)
	profileQueries.AssertExpectations(t)
}

// TestRegisterStaffInvalidPosition проверяет, что должность вне
// закрытого списка отклоняется при разборе запроса
func TestRegisterStaffInvalidPosition(t *testing.T) {
	r, _, userQueries, _, _ := setupAuthTest()

	w := doJSON(r, "POST", "/staff/public-register", map[string]string{
		"fullName":    "Anna Petrova",
		"email":       "new@example.com",
		"password":    "password123",
		"position":    "MANAGER",
		"phoneNumber": "+8801712345678",
		"gender":      "female",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userQueries.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

// TestRegisterStaffDuplicateEmail проверяет регистрацию с занятым email
func TestRegisterStaffDuplicateEmail(t *testing.T) {
	r, _, userQueries, _, _ := setupAuthTest()

	userQueries.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	w := doJSON(r, "POST", "/staff/public-register", models.RegisterStaffRequest{
		FullName:    "Anna Petrova",
		Email:       "taken@example.com",
		Password:    "password123",
		Position:    models.PositionChecker,
		PhoneNumber: "+8801712345678",
		Gender:      "female",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response models.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response.Message, "уже существует")

	userQueries.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

// TestRegisterAttendeeSuccess проверяет успешную регистрацию участника
func TestRegisterAttendeeSuccess(t *testing.T) {
	r, _, userQueries, profileQueries, _ := setupAuthTest()

	userQueries.On("EmailExists", mock.Anything, "guest@example.com").Return(false, nil)
	userQueries.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return("attendee-uuid", nil)
	profileQueries.On("UpsertAttendeeProfile", mock.Anything, "attendee-uuid", mock.AnythingOfType("*models.AttendeeProfile")).Return(nil)

	w := doJSON(r, "POST", "/attendee/public-register", models.RegisterAttendeeRequest{
		FullName: "Ivan Ivanov",
		Email:    "guest@example.com",
		Password: "password123",
		Gender:   "male",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.RegisterResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, response.Role)
}

// TestRegisterShortPassword проверяет, что короткий пароль отклоняется
func TestRegisterShortPassword(t *testing.T) {
	r, _, userQueries, _, _ := setupAuthTest()

	w := doJSON(r, "POST", "/staff/public-register", models.RegisterStaffRequest{
		FullName:    "Anna Petrova",
		Email:       "new@example.com",
		Password:    "short",
		Position:    models.PositionChecker,
		PhoneNumber: "+8801712345678",
		Gender:      "female",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userQueries.AssertNotCalled(t, "EmailExists", mock.Anything, mock.Anything)
}
