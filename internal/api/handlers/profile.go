package handlers

import (
	"net/http"

	"eventhub/internal/db/queries"
	"eventhub/internal/models"

	"github.com/gin-gonic/gin"
)

// ProfileHandler содержит обработчики для работы с профилями
type ProfileHandler struct {
	userQueries    queries.UserQueriesInterface
	profileQueries queries.ProfileQueriesInterface
}

// NewProfileHandler создает новый экземпляр ProfileHandler
func NewProfileHandler(userQueries queries.UserQueriesInterface, profileQueries queries.ProfileQueriesInterface) *ProfileHandler {
	return &ProfileHandler{
		userQueries:    userQueries,
		profileQueries: profileQueries,
	}
}

// Me возвращает обработчик, отдающий запись владельца токена
func (h *ProfileHandler) Me(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("userID")
		h.respondWithRecord(c, role, userID.(string))
	}
}

// Get возвращает обработчик, отдающий запись по идентификатору.
// Совпадение идентификатора с владельцем токена проверяет middleware.
func (h *ProfileHandler) Get(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondWithRecord(c, role, c.Param("id"))
	}
}

// UpdateStaff обрабатывает обновление профиля сотрудника
func (h *ProfileHandler) UpdateStaff(c *gin.Context) {
	var req models.UpdateStaffProfileRequest

	// Проверяем данные запроса; недопустимая должность отклоняется здесь
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	id := c.Param("id")
	profile := &models.StaffProfile{
		Position:    req.Position,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := h.profileQueries.UpsertStaffProfile(c.Request.Context(), id, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при сохранении профиля: " + err.Error(),
		})
		return
	}

	h.respondWithRecord(c, models.RoleStaff, id)
}

// UpdateAttendee обрабатывает обновление профиля участника
func (h *ProfileHandler) UpdateAttendee(c *gin.Context) {
	var req models.UpdateAttendeeProfileRequest

	// Проверяем данные запроса
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверный запрос: " + err.Error(),
		})
		return
	}

	id := c.Param("id")
	profile := &models.AttendeeProfile{
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Country:     req.Country,
		City:        req.City,
	}

	if err := h.profileQueries.UpsertAttendeeProfile(c.Request.Context(), id, profile); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при сохранении профиля: " + err.Error(),
		})
		return
	}

	h.respondWithRecord(c, models.RoleAttendee, id)
}

// respondWithRecord отдает запись пользователя с профилем.
// Отсутствующий профиль не ошибка: поля остаются пустыми.
func (h *ProfileHandler) respondWithRecord(c *gin.Context, role, id string) {
	user, err := h.userQueries.GetUserByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при получении пользователя: " + err.Error(),
		})
		return
	}

	if user == nil || user.Role != role {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Message: "Пользователь не найден",
		})
		return
	}

	switch role {
	case models.RoleStaff:
		profile, err := h.profileQueries.GetStaffProfile(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Ошибка при получении профиля: " + err.Error(),
			})
			return
		}
		if profile == nil {
			profile = &models.StaffProfile{}
		}

		c.JSON(http.StatusOK, models.StaffRecordResponse{
			Data: models.StaffRecord{
				ID:          user.ID,
				FullName:    user.FullName(),
				Position:    profile.Position,
				Gender:      profile.Gender,
				PhoneNumber: profile.PhoneNumber,
				Address:     profile.Address,
				User:        models.UserRef{Email: user.Email},
			},
		})
	case models.RoleAttendee:
		profile, err := h.profileQueries.GetAttendeeProfile(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Message: "Ошибка при получении профиля: " + err.Error(),
			})
			return
		}
		if profile == nil {
			profile = &models.AttendeeProfile{}
		}

		c.JSON(http.StatusOK, models.AttendeeRecordResponse{
			Data: models.AttendeeRecord{
				ID:          user.ID,
				FullName:    user.FullName(),
				PhoneNumber: profile.PhoneNumber,
				DateOfBirth: profile.DateOfBirth,
				Gender:      profile.Gender,
				Country:     profile.Country,
				City:        profile.City,
				User:        models.UserRef{Email: user.Email},
			},
		})
	}
}
