package media

import (
	"github.com/gin-gonic/gin"

	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
	"github.com/scamwatch/api-go/internal/pkg/response"
)

// Folders an admin may upload into.
var allowedFolders = map[string]bool{
	"news":        true,
	"banners":     true,
	"profiles":    true,
	"marketplace": true,
}

type Handler struct {
	uploader *cloudinary.Service
}

func NewHandler(uploader *cloudinary.Service) *Handler {
	return &Handler{uploader: uploader}
}

// @Summary Upload an image (admin)
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Param folder formData string false "Target folder"
// @Success 201 {object} response.APIResponse{data=cloudinary.UploadResult}
// @Router /media/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.uploader == nil {
		response.InternalServerError(c, "Image uploads are not configured")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required")
		return
	}
	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	folder := c.PostForm("folder")
	if !allowedFolders[folder] {
		folder = "misc"
	}

	file, err := header.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	result, err := h.uploader.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		response.InternalServerError(c, "Upload failed")
		return
	}

	response.Created(c, result)
}
