package media

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, uploader *cloudinary.Service) {
	handler := NewHandler(uploader)

	authRepo := auth.NewRepository(db)
	authenticate := auth.Authenticate(authRepo, cfg)

	group := router.Group("/media")
	group.Use(authenticate, auth.RequireAdmin())
	{
		group.POST("/upload", handler.Upload)
	}
}
