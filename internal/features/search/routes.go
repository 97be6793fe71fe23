package search

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/pkg/ratelimit"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) {
	handler := NewHandler(db)

	limiter := ratelimit.Middleware(ratelimit.New(30, time.Minute))

	group := router.Group("/search")
	group.Use(limiter)
	{
		group.GET("", handler.Search)
		group.GET("/phone/:phone", handler.CheckPhone)
		group.GET("/facebook/:fbId", handler.CheckFacebook)
	}
}
