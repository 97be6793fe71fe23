package profiles

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/features/auth"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo)
	authRepo := auth.NewRepository(db)
	authenticate := auth.Authenticate(authRepo, cfg)

	group := router.Group("/profiles")
	{
		group.GET("", handler.ListProfiles)
		group.GET("/:id", handler.GetProfile)

		group.POST("", authenticate, auth.RequireAdmin(), handler.CreateProfile)
		group.PUT("/:id", authenticate, auth.RequireAdmin(), handler.UpdateProfile)
		group.DELETE("/:id", authenticate, auth.RequireAdmin(), handler.DeleteProfile)
	}
}
