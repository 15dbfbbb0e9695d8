package reports

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/soundwatch/soundwatch-api/internal/middleware"
	"github.com/soundwatch/soundwatch-api/internal/pkg/cloudinary"
	"github.com/soundwatch/soundwatch-api/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, cld *cloudinary.Service, log *logrus.Logger) {
	repo := NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("failed to ensure report indexes")
	}

	service := NewService(repo, cld, log)
	handler := NewHandler(service, repo, cld, log)

	// Submissions are throttled per client IP
	submitLimiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	submitLimiter.StartCleanup(5 * time.Minute)

	reports := router.Group("/reports")
	{
		reports.POST("/new-report", ratelimit.Middleware(submitLimiter), handler.NewReport)
		reports.GET("/get-report", handler.GetReports)
		reports.GET("/near", handler.NearReports)
		reports.GET("/:id", handler.GetReport)
		reports.DELETE("/:id", middleware.Auth(cfg), middleware.RequireAdmin(), handler.DeleteReport)
	}
}
