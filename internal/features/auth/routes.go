package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)
	authenticate := Authenticate(repo, cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/me", authenticate, handler.Me)
		authGroup.PUT("/password", authenticate, handler.ChangePassword)
	}

	// Account management is super-admin territory.
	users := router.Group("/users")
	users.Use(authenticate, RequireSuperAdmin())
	{
		users.GET("", handler.ListAdmins)
		users.POST("", handler.CreateAdmin)
		users.PUT("/:id", handler.UpdateAdmin)
		users.DELETE("/:id", handler.DeleteAdmin)
	}
}
