package banners

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

	group := router.Group("/banners")
	{
		group.GET("", handler.GetActiveBanners)

		group.GET("/all", authenticate, auth.RequireAdmin(), handler.GetAllBanners)
		group.POST("", authenticate, auth.RequireAdmin(), handler.CreateBanner)
		group.PUT("/:id", authenticate, auth.RequireAdmin(), handler.UpdateBanner)
		group.DELETE("/:id", authenticate, auth.RequireAdmin(), handler.DeleteBanner)
	}
}
