package handlers

import (
	"net/http"
	"strings"

	"eventhub/internal/db/queries"
	"eventhub/internal/models"
	"eventhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler содержит обработчики для авторизации
type AuthHandler struct {
	jwtManager      utils.JWTManagerInterface
	userQueries     queries.UserQueriesInterface
	profileQueries  queries.ProfileQueriesInterface
	passwordChecker utils.PasswordCheckerInterface
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(jwtManager utils.JWTManagerInterface, userQueries queries.UserQueriesInterface, profileQueries queries.ProfileQueriesInterface, passwordChecker utils.PasswordCheckerInterface) *AuthHandler {
	return &AuthHandler{
		jwtManager:      jwtManager,
		userQueries:     userQueries,
		profileQueries:  profileQueries,
		passwordChecker: passwordChecker,
	}
}

// Login возвращает обработчик авторизации для указанной роли
func (h *AuthHandler) Login(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest

		// Проверяем запрос
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Неверный запрос: " + err.Error(),
			})
			return
		}

		// Получаем пользователя из базы данных
		user, err := h.userQueries.GetUserWithCredentials(c.Request.Context(), req.Email, role)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Неверные учетные данные",
			})
			return
		}

		// Проверяем пароль
		err = h.passwordChecker.CheckPassword(req.Password, user.PasswordHash)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Неверные учетные данные",
			})
			return
		}

		// Генерируем JWT-токен
		token, err := h.jwtManager.GenerateToken(user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Ошибка при создании токена: " + err.Error(),
			})
			return
		}

		// Возвращаем токен
		c.JSON(http.StatusOK, models.LoginResponse{
			AccessToken: token,
		})
	}
}

// RegisterStaff обрабатывает публичную регистрацию сотрудника
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req models.RegisterStaffRequest

	// Проверяем данные запроса; недопустимая должность отклоняется здесь
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	id, ok := h.createUser(c, models.RoleStaff, req.FullName, req.Email, req.Password)
	if !ok {
		return
	}

	// Создаем профиль сотрудника
	profile := &models.StaffProfile{
		Position:    req.Position,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := h.profileQueries.UpsertStaffProfile(c.Request.Context(), id, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при создании профиля: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		ID:    id,
		Email: req.Email,
		Role:  models.RoleStaff,
	})
}

// RegisterAttendee обрабатывает публичную регистрацию участника
func (h *AuthHandler) RegisterAttendee(c *gin.Context) {
	var req models.RegisterAttendeeRequest

	// Проверяем данные запроса
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	id, ok := h.createUser(c, models.RoleAttendee, req.FullName, req.Email, req.Password)
	if !ok {
		return
	}

	// Создаем профиль участника с известными полями
	profile := &models.AttendeeProfile{
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
	}
	if err := h.profileQueries.UpsertAttendeeProfile(c.Request.Context(), id, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при создании профиля: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		ID:    id,
		Email: req.Email,
		Role:  models.RoleAttendee,
	})
}

// createUser создает учетную запись и пишет ответ с ошибкой сам,
// если создать ее не удалось
func (h *AuthHandler) createUser(c *gin.Context, role, fullName, email, password string) (string, bool) {
	// Проверяем, существует ли пользователь с таким email
	exists, err := h.userQueries.EmailExists(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при проверке email: " + err.Error(),
		})
		return "", false
	}

	if exists {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Пользователь с таким email уже существует",
		})
		return "", false
	}

	// Хешируем пароль
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при хешировании пароля: " + err.Error(),
		})
		return "", false
	}

	firstName, lastName := splitFullName(fullName)

	// Создаем пользователя
	user := &models.User{
		Email:        email,
		Role:         role,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
	}
	id, err := h.userQueries.CreateUser(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при создании пользователя: " + err.Error(),
		})
		return "", false
	}

	return id, true
}

// splitFullName делит полное имя на имя и фамилию по первому пробелу
func splitFullName(fullName string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(fullName), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
