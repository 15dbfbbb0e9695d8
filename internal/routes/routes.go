package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundwatch/soundwatch-api/internal/config"
	"github.com/soundwatch/soundwatch-api/internal/features/auth"
	"github.com/soundwatch/soundwatch-api/internal/features/reports"
	"github.com/soundwatch/soundwatch-api/internal/features/users"
	"github.com/soundwatch/soundwatch-api/internal/pkg/cloudinary"
)

// SetupRoutes wires every feature onto the router. Paths are mounted at the
// root because the deployed mobile clients call them without a version prefix.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, log *logrus.Logger) {
	api := router.Group("")

	// Shared Cloudinary client for report media. A misconfigured environment
	// should not stop the read endpoints from serving, so log and continue.
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		log.WithError(err).Warn("cloudinary unavailable, media uploads will fail")
	}

	reports.RegisterRoutes(api, db, cfg, cld, log)
	auth.RegisterRoutes(api, db, cfg, log)
	users.RegisterRoutes(api, db, cfg)
}
