package profiles

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/pkg/pagination"
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

// @Summary Get profile by ID
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} response.APIResponse{data=Profile}
// @Router /profiles/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	profile, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.InternalServerError(c, "Failed to load profile")
		return
	}

	response.Success(c, profile)
}

// @Summary List profiles
// @Tags profiles
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param riskLevel query string false "Filter by risk level"
// @Success 200 {object} response.PaginatedResponse{data=[]Profile}
// @Router /profiles [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	params := pagination.Parse(c, 10, 50)
	riskLevel := c.Query("riskLevel")

	items, total, err := h.repo.List(c.Request.Context(), riskLevel, params.Skip(), int64(params.Limit))
	if err != nil {
		response.InternalServerError(c, "Failed to list profiles")
		return
	}

	response.Paginated(c, items, total, params.Limit, params.Page)
}

// @Summary Create profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProfileRequest true "Profile"
// @Success 201 {object} response.APIResponse{data=Profile}
// @Router /profiles [post]
func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Profile name is required")
		return
	}

	if req.ContactInfo.Phone != "" && !validator.IsValidPhone(req.ContactInfo.Phone) {
		response.BadRequest(c, "Invalid phone number")
		return
	}
	for _, account := range req.BankAccounts {
		if !validator.IsValidBankAccount(account.AccountNumber) {
			response.BadRequest(c, "Invalid bank account number")
			return
		}
	}

	profile := &Profile{
		Name:         req.Name,
		Avatar:       req.Avatar,
		ContactInfo:  req.ContactInfo,
		BankAccounts: req.BankAccounts,
		RiskLevel:    req.RiskLevel,
	}

	if err := h.repo.Create(c.Request.Context(), profile); err != nil {
		response.InternalServerError(c, "Failed to create profile")
		return
	}

	response.Created(c, profile)
}

// @Summary Update profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} response.APIResponse{data=Profile}
// @Router /profiles/{id} [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.ContactInfo != nil {
		updates["contactInfo"] = req.ContactInfo
	}
	if req.BankAccounts != nil {
		updates["bankAccounts"] = req.BankAccounts
	}
	if req.RiskLevel != "" {
		updates["riskLevel"] = req.RiskLevel
	}
	if req.IsVerified != nil {
		updates["isVerified"] = *req.IsVerified
	}

	if len(updates) == 0 {
		response.BadRequest(c, "Nothing to update")
		return
	}

	profile, err := h.repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.InternalServerError(c, "Failed to update profile")
		return
	}

	response.Success(c, profile)
}

// @Summary Delete profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 200 {object} response.APIResponse
// @Router /profiles/{id} [delete]
func (h *Handler) DeleteProfile(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Profile not found")
			return
		}
		response.InternalServerError(c, "Failed to delete profile")
		return
	}

	response.SuccessMessage(c, nil, "Profile deleted")
}
