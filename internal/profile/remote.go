package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"eventhub/internal/models"
	"eventhub/internal/validation"
)

// Remote реализует репозиторий профилей поверх удаленного HTTP API.
// Каждый запрос несет заголовок Authorization: Bearer <token>.
// Ответ 401 обязан приводить к сбросу сессии: для этого вызывается
// переданный хук onUnauthorized.
type Remote struct {
	baseURL        string
	client         *http.Client
	token          func() string
	onUnauthorized func()
}

// NewRemote создает удаленный репозиторий профилей.
// token возвращает bearer токен текущей сессии,
// onUnauthorized вызывается при ответе 401.
func NewRemote(baseURL string, client *http.Client, token func() string, onUnauthorized func()) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         client,
		token:          token,
		onUnauthorized: onUnauthorized,
	}
}

// do выполняет запрос с bearer токеном и разбирает JSON ответ в out
func (r *Remote) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrTransient, err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrTransient, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := r.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Недействительный токен: сбрасываем сессию
		if r.onUnauthorized != nil {
			r.onUnauthorized()
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var apiErr models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrValidationRejected, apiErr.Message)
		}
		return ErrValidationRejected
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server returned %d", ErrTransient, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrTransient, err)
		}
	}

	return nil
}

// GetProfile загружает профиль пользователя с сервера
func (r *Remote) GetProfile(ctx context.Context, role, id string) (*models.Profile, error) {
	switch role {
	case models.RoleStaff:
		var resp models.StaffRecordResponse
		if err := r.do(ctx, http.MethodGet, "/staff/"+id, nil, &resp); err != nil {
			return nil, err
		}
		return &models.Profile{
			Role: models.RoleStaff,
			Staff: &models.StaffProfile{
				Position:    resp.Data.Position,
				Gender:      resp.Data.Gender,
				PhoneNumber: resp.Data.PhoneNumber,
				Address:     resp.Data.Address,
			},
		}, nil
	case models.RoleAttendee:
		var resp models.AttendeeRecordResponse
		if err := r.do(ctx, http.MethodGet, "/attendee/"+id, nil, &resp); err != nil {
			return nil, err
		}
		return &models.Profile{
			Role: models.RoleAttendee,
			Attendee: &models.AttendeeProfile{
				PhoneNumber: resp.Data.PhoneNumber,
				DateOfBirth: resp.Data.DateOfBirth,
				Gender:      resp.Data.Gender,
				Country:     resp.Data.Country,
				City:        resp.Data.City,
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", ErrValidationRejected, role)
}

// SaveProfile отправляет проверенные данные профиля на сервер
func (r *Remote) SaveProfile(ctx context.Context, role, id string, data validation.ValidatedData) (*models.Profile, error) {
	switch role {
	case models.RoleStaff:
		body := models.UpdateStaffProfileRequest{
			Position:    data["position"],
			Gender:      data["gender"],
			PhoneNumber: data["phoneNumber"],
			Address:     data["address"],
		}
		var resp models.StaffRecordResponse
		if err := r.do(ctx, http.MethodPut, "/staff/"+id, body, &resp); err != nil {
			return nil, err
		}
		return &models.Profile{
			Role: models.RoleStaff,
			Staff: &models.StaffProfile{
				Position:    resp.Data.Position,
				Gender:      resp.Data.Gender,
				PhoneNumber: resp.Data.PhoneNumber,
				Address:     resp.Data.Address,
			},
		}, nil
	case models.RoleAttendee:
		body := models.UpdateAttendeeProfileRequest{
			PhoneNumber: data["phoneNumber"],
			DateOfBirth: data["dateOfBirth"],
			Gender:      data["gender"],
			Country:     data["country"],
			City:        data["city"],
		}
		var resp models.AttendeeRecordResponse
		if err := r.do(ctx, http.MethodPut, "/attendee/"+id, body, &resp); err != nil {
			return nil, err
		}
		return &models.Profile{
			Role: models.RoleAttendee,
			Attendee: &models.AttendeeProfile{
				PhoneNumber: resp.Data.PhoneNumber,
				DateOfBirth: resp.Data.DateOfBirth,
				Gender:      resp.Data.Gender,
				Country:     resp.Data.Country,
				City:        resp.Data.City,
			},
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", ErrValidationRejected, role)
}

// Login выполняет вход через API и возвращает токен и идентичность
func (r *Remote) Login(ctx context.Context, role, email, password string) (*models.Identity, string, error) {
	var loginResp models.LoginResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := r.do(ctx, http.MethodPost, "/"+role+"/login", body, &loginResp); err != nil {
		return nil, "", err
	}

	// Сервер подтвердил учетные данные; забираем идентичность
	identity, err := r.me(ctx, role, loginResp.AccessToken)
	if err != nil {
		return nil, "", err
	}

	return identity, loginResp.AccessToken, nil
}

// Register выполняет публичную регистрацию через API
func (r *Remote) Register(ctx context.Context, role string, data validation.ValidatedData) error {
	fullName := strings.TrimSpace(data["firstName"] + " " + data["lastName"])
	switch role {
	case models.RoleStaff:
		body := models.RegisterStaffRequest{
			FullName:    fullName,
			Email:       data["email"],
			Password:    data["password"],
			Position:    data["position"],
			PhoneNumber: data["phoneNumber"],
			Gender:      data["gender"],
			Address:     data["address"],
		}
		return r.do(ctx, http.MethodPost, "/staff/public-register", body, nil)
	case models.RoleAttendee:
		body := models.RegisterAttendeeRequest{
			FullName:    fullName,
			Email:       data["email"],
			Password:    data["password"],
			PhoneNumber: data["phoneNumber"],
			Gender:      data["gender"],
		}
		return r.do(ctx, http.MethodPost, "/attendee/public-register", body, nil)
	}
	return fmt.Errorf("%w: unknown role %q", ErrValidationRejected, role)
}

// me запрашивает идентичность владельца токена
func (r *Remote) me(ctx context.Context, role, token string) (*models.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+role+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransient, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if r.onUnauthorized != nil {
			r.onUnauthorized()
		}
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %d", ErrTransient, resp.StatusCode)
	}

	var meResp struct {
		Data struct {
			ID       string `json:"id"`
			FullName string `json:"fullName"`
			User     struct {
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrTransient, err)
	}

	firstName, lastName := splitFullName(meResp.Data.FullName)

	return &models.Identity{
		ID:        meResp.Data.ID,
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		Email:     meResp.Data.User.Email,
	}, nil
}

// splitFullName делит полное имя на имя и фамилию по первому пробелу
func splitFullName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
