package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/soundwatch/soundwatch-api/internal/features/auth"
	"github.com/soundwatch/soundwatch-api/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	authRepo := auth.NewRepository(db)
	handler := NewHandler(authRepo)

	users := router.Group("/user")
	users.Use(middleware.Auth(cfg))
	{
		users.GET("/profile", handler.Profile)

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/getAll", handler.GetAll)
			admin.GET("/countUsersOnly", handler.CountUsersOnly)
			admin.GET("/getAllUsersOnly", handler.GetAllUsersOnly)
		}
	}
}
