package auth

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/soundwatch/soundwatch-api/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, log *logrus.Logger) {
	repo := NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("failed to ensure user indexes")
	}

	handler := NewHandler(repo, NewMailer(cfg, log), cfg, log)

	// Credential endpoints share one limiter to slow brute forcing
	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	limiter.StartCleanup(5 * time.Minute)

	auth := router.Group("/auth")
	auth.Use(ratelimit.Middleware(limiter))
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/verify-email", handler.VerifyEmail)
	}
}
