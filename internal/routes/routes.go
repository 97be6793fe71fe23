package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/features/banners"
	"github.com/scamwatch/api-go/internal/features/marketplace"
	"github.com/scamwatch/api-go/internal/features/media"
	"github.com/scamwatch/api-go/internal/features/news"
	"github.com/scamwatch/api-go/internal/features/profiles"
	"github.com/scamwatch/api-go/internal/features/reports"
	"github.com/scamwatch/api-go/internal/features/search"
	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
	"github.com/scamwatch/api-go/internal/pkg/logger"
)

// SetupRoutes registers every feature under /api and returns the
// marketplace sweeper so main can manage its lifecycle.
func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) *marketplace.Sweeper {
	api := router.Group("/api")

	uploader, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		logger.Warn("cloudinary not configured, image uploads disabled: %v", err)
		uploader = nil
	}

	auth.RegisterRoutes(api, db, cfg)
	profiles.RegisterRoutes(api, db, cfg)
	reports.RegisterRoutes(api, db, cfg, uploader)
	sweeper := marketplace.RegisterRoutes(api, db, cfg, uploader)
	news.RegisterRoutes(api, db, cfg)
	banners.RegisterRoutes(api, db, cfg)
	search.RegisterRoutes(api, db)
	media.RegisterRoutes(api, db, cfg, uploader)

	return sweeper
}
