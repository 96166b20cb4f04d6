package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/models"
	"eventhub/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRemote создает удаленный репозиторий поверх тестового сервера
func newTestRemote(t *testing.T, handler http.HandlerFunc) (*Remote, *bool) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	unauthorizedFired := false
	remote := NewRemote(
		server.URL,
		server.Client(),
		func() string { return "test-token" },
		func() { unauthorizedFired = true },
	)

	return remote, &unauthorizedFired
}

// TestRemoteGetProfileSuccess проверяет загрузку профиля сотрудника
func TestRemoteGetProfileSuccess(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/staff/42", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(models.StaffRecordResponse{
			Data: models.StaffRecord{
				ID:          "42",
				FullName:    "Anna Petrova",
				Position:    models.PositionChecker,
				Gender:      "female",
				PhoneNumber: "+8801712345678",
				User:        models.UserRef{Email: "anna@example.com"},
			},
		})
	})

	p, err := remote.GetProfile(context.Background(), models.RoleStaff, "42")

	require.NoError(t, err)
	require.NotNil(t, p.Staff)
	assert.Equal(t, models.PositionChecker, p.Staff.Position)
	assert.Equal(t, "+8801712345678", p.Staff.PhoneNumber)
}

// TestRemoteUnauthorized проверяет, что ответ 401 дает ErrUnauthorized
// и вызывает хук сброса сессии
func TestRemoteUnauthorized(t *testing.T) {
	remote, unauthorizedFired := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := remote.GetProfile(context.Background(), models.RoleStaff, "42")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, *unauthorizedFired)
}

// TestRemoteNotFound проверяет обработку ответа 404
func TestRemoteNotFound(t *testing.T) {
	remote, unauthorizedFired := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := remote.GetProfile(context.Background(), models.RoleAttendee, "99")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, *unauthorizedFired)
}

// TestRemoteServerError проверяет, что ошибка сервера дает ErrTransient
func TestRemoteServerError(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := remote.GetProfile(context.Background(), models.RoleStaff, "42")

	assert.ErrorIs(t, err, ErrTransient)
}

// TestRemoteSaveProfile проверяет отправку профиля на сервер
func TestRemoteSaveProfile(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/staff/42", r.URL.Path)

		var req models.UpdateStaffProfileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.PositionSupport, req.Position)

		json.NewEncoder(w).Encode(models.StaffRecordResponse{
			Data: models.StaffRecord{
				ID:          "42",
				Position:    req.Position,
				Gender:      req.Gender,
				PhoneNumber: req.PhoneNumber,
				Address:     req.Address,
			},
		})
	})

	data := validation.ValidatedData{
		"position":    models.PositionSupport,
		"gender":      "male",
		"phoneNumber": "+8801712345678",
		"address":     "12 Main Street",
	}

	p, err := remote.SaveProfile(context.Background(), models.RoleStaff, "42", data)

	require.NoError(t, err)
	assert.Equal(t, models.PositionSupport, p.Staff.Position)
}

// TestRemoteSaveProfileRejected проверяет обработку отклоненных данных
func TestRemoteSaveProfileRejected(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Message: "bad position"})
	})

	_, err := remote.SaveProfile(context.Background(), models.RoleStaff, "42", validation.ValidatedData{})

	assert.ErrorIs(t, err, ErrValidationRejected)
}

// TestRemoteLogin проверяет вход через API: токен и идентичность
func TestRemoteLogin(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/staff/login":
			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "anna@example.com", req.Email)

			json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "new-token"})
		case "/staff/me":
			assert.Equal(t, "Bearer new-token", r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{
					"id":       "42",
					"fullName": "Anna Petrova",
					"user":     map[string]string{"email": "anna@example.com"},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	identity, token, err := remote.Login(context.Background(), models.RoleStaff, "anna@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Equal(t, "42", identity.ID)
	assert.Equal(t, "Anna", identity.FirstName)
	assert.Equal(t, "Petrova", identity.LastName)
	assert.Equal(t, "anna@example.com", identity.Email)
}

// TestRemoteLoginBadCredentials проверяет вход с неверными данными
func TestRemoteLoginBadCredentials(t *testing.T) {
	remote, _ := newTestRemote(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse{Message: "bad credentials"})
	})

	_, _, err := remote.Login(context.Background(), models.RoleStaff, "a@b.com", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
}
