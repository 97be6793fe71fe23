package marketplace

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/features/auth"
	"github.com/scamwatch/api-go/internal/pkg/cloudinary"
	"github.com/scamwatch/api-go/internal/pkg/normalize"
	"github.com/scamwatch/api-go/internal/pkg/pagination"
	"github.com/scamwatch/api-go/internal/pkg/response"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

const (
	imageFolder = "marketplace"
	maxImages   = 10
)

type Handler struct {
	repo     *Repository
	service  *Service
	sweeper  *Sweeper
	uploader *cloudinary.Service
}

func NewHandler(repo *Repository, service *Service, sweeper *Sweeper, uploader *cloudinary.Service) *Handler {
	return &Handler{repo: repo, service: service, sweeper: sweeper, uploader: uploader}
}

// mergeContact resolves flat contact* form keys against the nested
// object; the flat key wins when both are present.
func mergeContact(req *CreateListingRequest) Contact {
	contact := Contact{}
	if req.Contact != nil {
		contact = *req.Contact
	}

	if req.ContactPhone != "" {
		contact.Phone = req.ContactPhone
	}
	if req.ContactFacebook != "" {
		contact.Facebook = req.ContactFacebook
	}
	if req.ContactMessenger != "" {
		contact.Messenger = req.ContactMessenger
	}
	if req.ContactZalo != "" {
		contact.Zalo = req.ContactZalo
	}
	if req.ContactTelegram != "" {
		contact.Telegram = req.ContactTelegram
	}
	if req.ContactEmail != "" {
		contact.Email = req.ContactEmail
	}
	return contact
}

func (h *Handler) parseCreateRequest(c *gin.Context) (*CreateListingRequest, []string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var req CreateListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	req := &CreateListingRequest{
		Title:            c.PostForm("title"),
		Description:      c.PostForm("description"),
		Price:            c.PostForm("price"),
		PriceUnit:        c.PostForm("priceUnit"),
		Images:           c.PostFormArray("images"),
		Category:         c.PostForm("category"),
		SellerName:       c.PostForm("sellerName"),
		SellerPhone:      c.PostForm("sellerPhone"),
		ContactPhone:     c.PostForm("contactPhone"),
		ContactFacebook:  c.PostForm("contactFacebook"),
		ContactMessenger: c.PostForm("contactMessenger"),
		ContactZalo:      c.PostForm("contactZalo"),
		ContactTelegram:  c.PostForm("contactTelegram"),
		ContactEmail:     c.PostForm("contactEmail"),
	}

	var uploaded []string
	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, nil
	}

	files := form.File["images"]
	if len(files) > maxImages {
		files = files[:maxImages]
	}
	for _, header := range files {
		if h.uploader == nil {
			break
		}
		if err := cloudinary.ValidateImageFile(header); err != nil {
			return nil, nil, err
		}
		file, err := header.Open()
		if err != nil {
			continue
		}
		result, err := h.uploader.UploadImage(c.Request.Context(), file, imageFolder)
		file.Close()
		if err != nil {
			continue
		}
		uploaded = append(uploaded, result.URL)
	}

	return req, uploaded, nil
}

// @Summary Create a marketplace listing
// @Tags marketplace
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body CreateListingRequest true "Listing"
// @Success 201 {object} response.APIResponse{data=Listing}
// @Router /marketplace [post]
func (h *Handler) CreateListing(c *gin.Context) {
	req, uploaded, err := h.parseCreateRequest(c)
	if err != nil {
		response.BadRequest(c, "Invalid listing payload")
		return
	}

	if req.Title == "" || req.Description == "" || req.SellerName == "" {
		response.BadRequest(c, "Title, description and seller name are required")
		return
	}

	listing := &Listing{
		Title:       normalize.Truncate(req.Title, 200),
		Description: normalize.Truncate(req.Description, 5000),
		Price:       normalize.Number(req.Price, 0),
		PriceUnit:   req.PriceUnit,
		Images:      append(normalize.StringList(req.Images), uploaded...),
		Category:    NormalizeCategory(req.Category),
		Contact:     mergeContact(req),
		SellerName:  req.SellerName,
		SellerPhone: req.SellerPhone,
	}

	if user, ok := auth.CurrentUser(c); ok {
		listing.UserID = &user.ID
	}

	if err := h.repo.Create(c.Request.Context(), listing); err != nil {
		response.InternalServerError(c, "Failed to create listing")
		return
	}

	response.CreatedMessage(c, listing, "Listing submitted, pending approval")
}

// @Summary Approved, unexpired listings
// @Tags marketplace
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Search term"
// @Success 200 {object} response.PaginatedResponse{data=[]Listing}
// @Router /marketplace/public [get]
func (h *Handler) GetPublicListings(c *gin.Context) {
	params := pagination.Parse(c, 12, 50)

	filter := bson.M{
		"status":    StatusApproved,
		"expiresAt": bson.M{"$gt": time.Now()},
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter["category"] = category
	}

	sort := bson.D{{Key: "isFeatured", Value: -1}, {Key: "createdAt", Value: -1}}

	search := c.Query("search")
	if search != "" {
		filter["$text"] = bson.M{"$search": search}
	}

	listings, total, err := h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit), sort)
	if err != nil {
		response.InternalServerError(c, "Failed to load listings")
		return
	}

	// Text search misses partial words; fall back to a regex title match
	// when it comes back empty.
	if search != "" && len(listings) == 0 {
		delete(filter, "$text")
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
		listings, total, err = h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit), sort)
		if err != nil {
			response.InternalServerError(c, "Failed to load listings")
			return
		}
	}

	response.Paginated(c, listings, total, params.Limit, params.Page)
}

// @Summary Marketplace stats
// @Tags marketplace
// @Produce json
// @Success 200 {object} response.APIResponse{data=Stats}
// @Router /marketplace/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load stats")
		return
	}
	response.Success(c, stats)
}

// @Summary Listing detail
// @Description Pending, rejected and expired listings stay visible to
// @Description their owner and to admins only.
// @Tags marketplace
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.APIResponse{data=Listing}
// @Router /marketplace/{id} [get]
func (h *Handler) GetListing(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	listing, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Listing not found")
			return
		}
		response.InternalServerError(c, "Failed to load listing")
		return
	}

	user, authed := auth.CurrentUser(c)
	isAdmin := authed && user.IsAdmin()
	isOwner := authed && listing.UserID != nil && *listing.UserID == user.ID

	if listing.Status != StatusApproved && !isAdmin && !isOwner {
		response.NotFound(c, "Listing not found")
		return
	}
	if listing.ExpiresAt != nil && listing.ExpiresAt.Before(time.Now()) && !isAdmin && !isOwner {
		response.NotFound(c, "Listing has expired")
		return
	}

	if listing.Status == StatusApproved {
		if err := h.repo.CountView(c.Request.Context(), id); err == nil {
			listing.Views++
		}
	}

	response.Success(c, listing)
}

// @Summary All listings (admin)
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {object} response.PaginatedResponse{data=[]Listing}
// @Router /marketplace [get]
func (h *Handler) GetAllListings(c *gin.Context) {
	params := pagination.Parse(c, 20, 100)

	filter := bson.M{}
	if status := c.Query("status"); status != "" && status != "all" {
		filter["status"] = status
	}

	listings, total, err := h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit),
		bson.D{{Key: "createdAt", Value: -1}})
	if err != nil {
		response.InternalServerError(c, "Failed to load listings")
		return
	}

	response.Paginated(c, listings, total, params.Limit, params.Page)
}

func (h *Handler) moderationError(c *gin.Context, err error) {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		response.NotFound(c, "Listing not found")
		return
	}
	response.InternalServerError(c, "Failed to update listing")
}

// @Summary Approve a listing
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} response.APIResponse{data=Listing}
// @Router /marketplace/{id}/approve [patch]
func (h *Handler) ApproveListing(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	admin, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	listing, err := h.service.Approve(c.Request.Context(), id, admin.ID)
	if err != nil {
		h.moderationError(c, err)
		return
	}

	response.SuccessMessage(c, listing, "Listing approved")
}

// @Summary Reject a listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body RejectListingRequest false "Reason"
// @Success 200 {object} response.APIResponse{data=Listing}
// @Router /marketplace/{id}/reject [patch]
func (h *Handler) RejectListing(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	var req RejectListingRequest
	c.ShouldBindJSON(&req)

	listing, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.moderationError(c, err)
		return
	}

	response.SuccessMessage(c, listing, "Listing rejected")
}

// @Summary Mark a listing as sold
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} response.APIResponse{data=Listing}
// @Router /marketplace/{id}/sold [patch]
func (h *Handler) MarkAsSold(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	user, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	listing, err := h.service.MarkSold(c.Request.Context(), id, user.ID, user.IsAdmin())
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Listing not found")
		case apperrors.Is(err, apperrors.ErrForbidden):
			response.Forbidden(c, "Only the owner or an admin can mark a listing sold")
		default:
			response.InternalServerError(c, "Failed to update listing")
		}
		return
	}

	response.SuccessMessage(c, listing, "Listing marked as sold")
}

// @Summary Delete a listing (admin)
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} response.APIResponse
// @Router /marketplace/{id} [delete]
func (h *Handler) DeleteListing(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Listing not found")
			return
		}
		response.InternalServerError(c, "Failed to delete listing")
		return
	}

	response.SuccessMessage(c, nil, "Listing deleted")
}

// @Summary Comments on a listing
// @Tags marketplace
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} response.PaginatedResponse{data=[]ListingComment}
// @Router /marketplace/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	params := pagination.Parse(c, 20, 50)
	comments, total, err := h.repo.ListComments(c.Request.Context(), id, params.Skip(), int64(params.Limit))
	if err != nil {
		response.InternalServerError(c, "Failed to load comments")
		return
	}

	response.Paginated(c, comments, total, params.Limit, params.Page)
}

// @Summary Comment on an approved listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} response.APIResponse{data=ListingComment}
// @Router /marketplace/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid comment payload")
		return
	}

	var userID *primitive.ObjectID
	if user, ok := auth.CurrentUser(c); ok {
		userID = &user.ID
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, req.Nickname, req.Content, userID)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Listing not found")
		case apperrors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "Comments are only allowed on approved listings")
		default:
			response.InternalServerError(c, "Failed to add comment")
		}
		return
	}

	response.Created(c, comment)
}

// @Summary Delete a listing comment (admin)
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} response.APIResponse
// @Router /marketplace/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), commentID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Comment not found")
			return
		}
		response.InternalServerError(c, "Failed to delete comment")
		return
	}

	response.SuccessMessage(c, nil, "Comment deleted")
}

// @Summary Run the expiry sweep once
// @Description One-shot trigger for external schedulers.
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=SweepResult}
// @Router /marketplace/expire [post]
func (h *Handler) ExpireListings(c *gin.Context) {
	result, err := h.sweeper.RunOnce(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Expiry sweep failed")
		return
	}
	response.Success(c, result)
}
