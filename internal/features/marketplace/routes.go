package marketplace

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
	"github.com/scamwatch/api-go/internal/pkg/ratelimit"
)

// commentStoreAdapter exposes the repository's comment methods under the
// names the service expects.
type commentStoreAdapter struct {
	repo *Repository
}

func (a commentStoreAdapter) Insert(ctx context.Context, comment *ListingComment) error {
	return a.repo.InsertComment(ctx, comment)
}

func (a commentStoreAdapter) Delete(ctx context.Context, id primitive.ObjectID) (*ListingComment, error) {
	return a.repo.DeleteComment(ctx, id)
}

func (a commentStoreAdapter) DeleteByListing(ctx context.Context, listingID primitive.ObjectID) error {
	return a.repo.DeleteCommentsByListing(ctx, listingID)
}

// RegisterRoutes wires the marketplace endpoints and returns the sweeper
// so the caller can manage its lifecycle.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, uploader *cloudinary.Service) *Sweeper {
	repo := NewRepository(db)
	service := NewService(repo, commentStoreAdapter{repo})
	sweeper := NewSweeper(repo, cfg.SweepInterval)
	handler := NewHandler(repo, service, sweeper, uploader)

	authRepo := auth.NewRepository(db)
	authenticate := auth.Authenticate(authRepo, cfg)
	optionalAuth := auth.OptionalAuthenticate(authRepo, cfg)

	createLimiter := ratelimit.Middleware(ratelimit.New(10, time.Minute))
	commentLimiter := ratelimit.Middleware(ratelimit.New(20, time.Minute))

	group := router.Group("/marketplace")
	{
		group.GET("/public", handler.GetPublicListings)
		group.GET("/stats", handler.GetStats)
		group.GET("/:id", optionalAuth, handler.GetListing)
		group.GET("/:id/comments", handler.GetComments)

		group.POST("", optionalAuth, createLimiter, handler.CreateListing)
		group.POST("/:id/comments", optionalAuth, commentLimiter, handler.AddComment)
		group.PATCH("/:id/sold", authenticate, handler.MarkAsSold)

		group.GET("", authenticate, auth.RequireAdmin(), handler.GetAllListings)
		group.PATCH("/:id/approve", authenticate, auth.RequireAdmin(), handler.ApproveListing)
		group.PATCH("/:id/reject", authenticate, auth.RequireAdmin(), handler.RejectListing)
		group.DELETE("/:id", authenticate, auth.RequireAdmin(), handler.DeleteListing)
		group.DELETE("/:id/comments/:commentId", authenticate, auth.RequireAdmin(), handler.DeleteComment)

		group.POST("/expire", authenticate, auth.RequireAdmin(), handler.ExpireListings)
	}

	return sweeper
}
