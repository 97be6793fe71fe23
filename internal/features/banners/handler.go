package banners

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/pkg/response"
	"github.com/scamwatch/api-go/internal/pkg/validator"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary Active banners
// @Tags banners
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]Banner}
// @Router /banners [get]
func (h *Handler) GetActiveBanners(c *gin.Context) {
	banners, err := h.repo.List(c.Request.Context(), bson.M{"isActive": true})
	if err != nil {
		response.InternalServerError(c, "Failed to load banners")
		return
	}
	response.Success(c, banners)
}

// @Summary All banners (admin)
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]Banner}
// @Router /banners/all [get]
func (h *Handler) GetAllBanners(c *gin.Context) {
	banners, err := h.repo.List(c.Request.Context(), bson.M{})
	if err != nil {
		response.InternalServerError(c, "Failed to load banners")
		return
	}
	response.Success(c, banners)
}

// @Summary Create a banner (admin)
// @Tags banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBannerRequest true "Banner"
// @Success 201 {object} response.APIResponse{data=Banner}
// @Router /banners [post]
func (h *Handler) CreateBanner(c *gin.Context) {
	var req CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Image URL is required")
		return
	}
	if req.Link != "" && !validator.IsValidURL(req.Link) {
		response.BadRequest(c, "Invalid link URL")
		return
	}

	banner := &Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Link:     req.Link,
		IsActive: true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.repo.Create(c.Request.Context(), banner); err != nil {
		response.InternalServerError(c, "Failed to create banner")
		return
	}

	response.Created(c, banner)
}

// @Summary Update a banner (admin)
// @Tags banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Param request body UpdateBannerRequest true "Fields to update"
// @Success 200 {object} response.APIResponse{data=Banner}
// @Router /banners/{id} [put]
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid banner ID")
		return
	}

	var req UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid banner payload")
		return
	}

	set := bson.M{}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.ImageURL != "" {
		set["imageUrl"] = req.ImageURL
	}
	if req.Link != "" {
		set["link"] = req.Link
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	banner, err := h.repo.Update(c.Request.Context(), id, set)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Banner not found")
			return
		}
		response.InternalServerError(c, "Failed to update banner")
		return
	}

	response.Success(c, banner)
}

// @Summary Delete a banner (admin)
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 200 {object} response.APIResponse
// @Router /banners/{id} [delete]
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid banner ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Banner not found")
			return
		}
		response.InternalServerError(c, "Failed to delete banner")
		return
	}

	response.SuccessMessage(c, nil, "Banner deleted")
}
