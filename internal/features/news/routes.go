package news

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
	optionalAuth := auth.OptionalAuthenticate(authRepo, cfg)

	group := router.Group("/news")
	{
		group.GET("/public", handler.GetPublicNews)
		group.GET("/:id", optionalAuth, handler.GetArticle)

		group.GET("", authenticate, auth.RequireAdmin(), handler.GetAllNews)
		group.GET("/stats", authenticate, auth.RequireAdmin(), handler.GetStats)
		group.POST("", authenticate, auth.RequireAdmin(), handler.CreateArticle)
		group.PUT("/:id", authenticate, auth.RequireAdmin(), handler.UpdateArticle)
		group.DELETE("/:id", authenticate, auth.RequireAdmin(), handler.DeleteArticle)
	}
}
