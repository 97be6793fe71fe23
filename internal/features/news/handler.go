package news

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/pkg/normalize"
	"github.com/scamwatch/api-go/internal/pkg/pagination"
	"github.com/scamwatch/api-go/internal/pkg/response"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary Create an article (admin)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateArticleRequest true "Article"
// @Success 201 {object} response.APIResponse{data=Article}
// @Router /news [post]
func (h *Handler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Title and content are required")
		return
	}

	article := &Article{
		Title:      normalize.Truncate(req.Title, 300),
		Excerpt:    normalize.Truncate(req.Excerpt, 500),
		Content:    req.Content,
		Category:   NormalizeCategory(req.Category),
		Image:      req.Image,
		Status:     req.Status,
		IsFeatured: normalize.Bool(req.IsFeatured),
		AuthorName: "Admin",
	}

	if user, ok := auth.CurrentUser(c); ok {
		article.Author = &user.ID
		if user.FullName != "" {
			article.AuthorName = user.FullName
		}
	}

	if err := h.repo.Create(c.Request.Context(), article); err != nil {
		response.InternalServerError(c, "Failed to create article")
		return
	}

	response.CreatedMessage(c, article, "Article created")
}

// @Summary Published articles
// @Tags news
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} response.PaginatedResponse{data=[]Article}
// @Router /news/public [get]
func (h *Handler) GetPublicNews(c *gin.Context) {
	params := pagination.Parse(c, 10, 50)

	filter := bson.M{"status": StatusPublished}
	if category := c.Query("category"); category != "" && category != "all" {
		filter["category"] = category
	}

	articles, total, err := h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit),
		bson.D{{Key: "isFeatured", Value: -1}, {Key: "publishedAt", Value: -1}})
	if err != nil {
		response.InternalServerError(c, "Failed to load articles")
		return
	}

	response.Paginated(c, articles, total, params.Limit, params.Page)
}

// @Summary Article detail
// @Tags news
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} response.APIResponse{data=Article}
// @Router /news/{id} [get]
func (h *Handler) GetArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	article, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Failed to load article")
		return
	}

	user, ok := auth.CurrentUser(c)
	isAdmin := ok && user.IsAdmin()

	// Drafts stay invisible to the public.
	if article.Status != StatusPublished && !isAdmin {
		response.NotFound(c, "Article not found")
		return
	}

	if article.Status == StatusPublished {
		if err := h.repo.CountView(c.Request.Context(), id); err == nil {
			article.Views++
		}
	}

	response.Success(c, article)
}

// @Summary All articles (admin)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Success 200 {object} response.PaginatedResponse{data=[]Article}
// @Router /news [get]
func (h *Handler) GetAllNews(c *gin.Context) {
	params := pagination.Parse(c, 20, 100)

	filter := bson.M{}
	if status := c.Query("status"); status != "" && status != "all" {
		filter["status"] = status
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter["category"] = category
	}

	articles, total, err := h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit),
		bson.D{{Key: "createdAt", Value: -1}})
	if err != nil {
		response.InternalServerError(c, "Failed to load articles")
		return
	}

	response.Paginated(c, articles, total, params.Limit, params.Page)
}

// @Summary Update an article (admin)
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body UpdateArticleRequest true "Fields to update"
// @Success 200 {object} response.APIResponse{data=Article}
// @Router /news/{id} [put]
func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid article payload")
		return
	}

	set := bson.M{}
	if req.Title != "" {
		set["title"] = normalize.Truncate(req.Title, 300)
	}
	if req.Excerpt != "" {
		set["excerpt"] = normalize.Truncate(req.Excerpt, 500)
	}
	if req.Content != "" {
		set["content"] = req.Content
	}
	if req.Category != "" {
		set["category"] = NormalizeCategory(req.Category)
	}
	if req.Image != "" {
		set["image"] = req.Image
	}
	if req.Status == StatusDraft || req.Status == StatusPublished {
		set["status"] = req.Status
	}
	if req.IsFeatured != nil {
		set["isFeatured"] = normalize.Bool(req.IsFeatured)
	}

	article, err := h.repo.Update(c.Request.Context(), id, set)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Failed to update article")
		return
	}

	response.SuccessMessage(c, article, "Article updated")
}

// @Summary Delete an article (admin)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.APIResponse
// @Router /news/{id} [delete]
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Failed to delete article")
		return
	}

	response.SuccessMessage(c, nil, "Article deleted")
}

// @Summary News stats (admin)
// @Tags news
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Stats}
// @Router /news/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load stats")
		return
	}
	response.Success(c, stats)
}
