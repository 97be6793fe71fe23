package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/pkg/response"
	"github.com/scamwatch/api-go/internal/pkg/token"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type Handler struct {
	repo *Repository
	cfg  *config.Config
}

func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.APIResponse{data=AuthResponse}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	user, err := h.repo.GetByLogin(c.Request.Context(), req.Username)
	if err != nil {
		// Same message for unknown user and bad password
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	if !user.IsActive {
		response.Unauthorized(c, "Account has been deactivated")
		return
	}

	expiry := time.Duration(h.cfg.JWTExpireHours) * time.Hour
	signed, err := token.Generate(user.ID.Hex(), user.Username, user.Role, h.cfg.JWTSecret, expiry)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	_ = h.repo.SetLastLogin(c.Request.Context(), user.ID)

	response.Success(c, AuthResponse{User: user, Token: signed})
}

// @Summary Current admin profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=User}
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	response.Success(c, user)
}

// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} response.APIResponse
// @Router /auth/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Current and new password are required")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		response.Unauthorized(c, "Current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to update password")
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), user.ID, string(hash)); err != nil {
		response.InternalServerError(c, "Failed to update password")
		return
	}

	response.SuccessMessage(c, nil, "Password updated")
}

// @Summary Create admin account
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAdminRequest true "New admin"
// @Success 201 {object} response.APIResponse{data=User}
// @Router /users [post]
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid admin payload")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to create account")
		return
	}

	role := req.Role
	if role == "" {
		role = RoleAdmin
	}

	now := time.Now()
	user := &User{
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Role:               role,
		IsActive:           true,
		InsuranceStartDate: &now,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Username or email already in use")
			return
		}
		response.InternalServerError(c, "Failed to create account")
		return
	}

	response.Created(c, user)
}

// @Summary List admin accounts
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]User}
// @Router /users [get]
func (h *Handler) ListAdmins(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list accounts")
		return
	}
	response.Success(c, users)
}

// @Summary Update admin account
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateAdminRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /users/{id} [put]
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid payload")
		return
	}

	updates := bson.M{}
	if req.FullName != "" {
		updates["fullName"] = req.FullName
	}
	if req.Nickname != "" {
		updates["nickname"] = req.Nickname
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
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}

	if len(updates) == 0 {
		response.BadRequest(c, "Nothing to update")
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, updates); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to update account")
		return
	}

	response.SuccessMessage(c, nil, "Account updated")
}

// @Summary Delete admin account
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.APIResponse
// @Router /users/{id} [delete]
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	current, _ := CurrentUser(c)
	if current != nil && current.ID == id {
		response.BadRequest(c, "Cannot delete your own account")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to delete account")
		return
	}

	response.SuccessMessage(c, nil, "Account deleted")
}
