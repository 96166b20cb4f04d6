package api

import (
	"eventhub/internal/api/handlers"
	"eventhub/internal/api/middleware"
	"eventhub/internal/config"
	"eventhub/internal/db"
	"eventhub/internal/db/queries"
	"eventhub/internal/models"
	"eventhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter настраивает маршруты и зависимости API
func SetupRouter(config *config.Config, db *db.Database) *gin.Engine {
	// Создаем экземпляр Gin
	router := gin.Default()

	// Создаем менеджер JWT
	jwtManager := utils.NewJWTManager(&config.JWT)

	// Создаем запросы к базе данных
	userQueries := queries.NewUserQueries(db)
	profileQueries := queries.NewProfileQueries(db)

	// Создаем обработчики
	authHandler := handlers.NewAuthHandler(jwtManager, userQueries, profileQueries, utils.BcryptPasswordChecker{})
	profileHandler := handlers.NewProfileHandler(userQueries, profileQueries)

	// Маршруты сотрудников
	staff := router.Group("/staff")
	{
		staff.POST("/login", authHandler.Login(models.RoleStaff))
		staff.POST("/public-register", authHandler.RegisterStaff)

		protected := staff.Group("", middleware.AuthMiddleware(jwtManager), middleware.RequireRole(models.RoleStaff))
		{
			protected.GET("/me", profileHandler.Me(models.RoleStaff))
			protected.GET("/:id", middleware.RequireSelf(), profileHandler.Get(models.RoleStaff))
			protected.PUT("/:id", middleware.RequireSelf(), profileHandler.UpdateStaff)
		}
	}

	// Маршруты участников
	attendee := router.Group("/attendee")
	{
		attendee.POST("/login", authHandler.Login(models.RoleAttendee))
		attendee.POST("/public-register", authHandler.RegisterAttendee)

		protected := attendee.Group("", middleware.AuthMiddleware(jwtManager), middleware.RequireRole(models.RoleAttendee))
		{
			protected.GET("/me", profileHandler.Me(models.RoleAttendee))
			protected.GET("/:id", middleware.RequireSelf(), profileHandler.Get(models.RoleAttendee))
			protected.PUT("/:id", middleware.RequireSelf(), profileHandler.UpdateAttendee)
		}
	}

	return router
}
