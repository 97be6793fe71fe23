package reports

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/features/profiles"
	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
	"github.com/scamwatch/api-go/internal/pkg/ratelimit"
)

// commentStoreAdapter exposes the repository's comment methods under the
// names the service expects.
type commentStoreAdapter struct {
	repo *Repository
}

func (a commentStoreAdapter) Insert(ctx context.Context, comment *Comment) error {
	return a.repo.InsertComment(ctx, comment)
}

func (a commentStoreAdapter) Delete(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	return a.repo.DeleteComment(ctx, id)
}

func (a commentStoreAdapter) DeleteByReport(ctx context.Context, reportID primitive.ObjectID) error {
	return a.repo.DeleteCommentsByReport(ctx, reportID)
}

// cloudinaryEvidenceStore resolves evidence URLs back to public IDs and
// asks the image store to remove them. URLs hosted elsewhere are skipped.
type cloudinaryEvidenceStore struct {
	svc *cloudinary.Service
}

func (s cloudinaryEvidenceStore) Delete(ctx context.Context, path string) error {
	if s.svc == nil {
		return nil
	}
	publicID := cloudinary.PublicIDFromURL(path)
	if publicID == "" {
		return nil
	}
	return s.svc.Delete(ctx, publicID)
}

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, uploader *cloudinary.Service) {
	repo := NewRepository(db)
	profileRepo := profiles.NewRepository(db)
	service := NewService(repo, profileRepo, commentStoreAdapter{repo}, cloudinaryEvidenceStore{uploader})
	handler := NewHandler(repo, service, uploader)

	authRepo := auth.NewRepository(db)
	authenticate := auth.Authenticate(authRepo, cfg)
	optionalAuth := auth.OptionalAuthenticate(authRepo, cfg)

	submitLimiter := ratelimit.Middleware(ratelimit.New(10, time.Minute))
	commentLimiter := ratelimit.Middleware(ratelimit.New(20, time.Minute))

	group := router.Group("/reports")
	{
		group.POST("", submitLimiter, handler.CreateReport)
		group.GET("/public", handler.GetPublicReports)
		group.GET("/stats", handler.GetReportStats)
		group.GET("/last7days", handler.GetReportsLast7Days)
		group.GET("/profile/:profileId", optionalAuth, handler.GetReportsByProfile)
		group.GET("/:id", optionalAuth, handler.GetReport)

		group.GET("/:id/comments", handler.GetReportComments)
		group.POST("/:id/comments", commentLimiter, handler.AddReportComment)

		group.GET("", authenticate, auth.RequireAdmin(), handler.GetAllReports)
		group.PUT("/:id/status", authenticate, auth.RequireAdmin(), handler.UpdateReportStatus)
		group.DELETE("/:id", authenticate, auth.RequireAdmin(), handler.DeleteReport)
		group.DELETE("/:id/comments/:commentId", authenticate, auth.RequireAdmin(), handler.DeleteReportComment)
	}

	router.GET("/comments/recent", handler.RecentComments)
}
