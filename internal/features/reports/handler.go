package reports

import (
	"strconv"
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
	"github.com/scamwatch/api-go/internal/pkg/validator"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

const evidenceFolder = "reports"

type Handler struct {
	repo     *Repository
	service  *Service
	uploader *cloudinary.Service
}

func NewHandler(repo *Repository, service *Service, uploader *cloudinary.Service) *Handler {
	return &Handler{repo: repo, service: service, uploader: uploader}
}

func isAdminRequest(c *gin.Context) bool {
	user, ok := auth.CurrentUser(c)
	return ok && user.IsAdmin()
}

// mergeTargetContact resolves flat form keys against the nested object;
// the flat key wins when both are present.
func mergeTargetContact(req *CreateReportRequest) TargetContact {
	contact := TargetContact{}
	if req.TargetContact != nil {
		contact = *req.TargetContact
	}

	if req.TargetPhone != "" {
		contact.Phone = req.TargetPhone
	}
	if req.TargetFacebook != "" {
		contact.Facebook = req.TargetFacebook
	}
	if req.TargetZalo != "" {
		contact.Zalo = req.TargetZalo
	}
	if req.TargetBankAccount != "" {
		contact.BankAccount = req.TargetBankAccount
	}
	if req.TargetBankName != "" {
		contact.BankName = req.TargetBankName
	}
	if req.TargetWebsite != "" {
		contact.Website = req.TargetWebsite
	}
	return contact
}

func (h *Handler) parseCreateRequest(c *gin.Context) (*CreateReportRequest, []string, error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	// Multipart submissions: every value is a string, files are evidence
	// images pushed to the image store.
	req := &CreateReportRequest{
		ReporterName:      c.PostForm("reporterName"),
		ReporterEmail:     c.PostForm("reporterEmail"),
		ReporterZalo:      c.PostForm("reporterZalo"),
		ReporterPhone:     c.PostForm("reporterPhone"),
		TargetName:        c.PostForm("targetName"),
		TargetPhone:       c.PostForm("targetPhone"),
		TargetFacebook:    c.PostForm("targetFacebook"),
		TargetZalo:        c.PostForm("targetZalo"),
		TargetBankAccount: c.PostForm("targetBankAccount"),
		TargetBankName:    c.PostForm("targetBankName"),
		TargetWebsite:     c.PostForm("targetWebsite"),
		Channel:           c.PostForm("channel"),
		ReportType:        c.PostForm("reportType"),
		Category:          c.PostForm("category"),
		Description:       c.PostForm("description"),
		Amount:            c.PostForm("amount"),
		Agreement:         c.PostForm("agreement"),
		Evidence:          c.PostFormArray("evidence"),
		ProfileID:         c.PostForm("profileId"),
	}

	var uploaded []string
	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, nil
	}

	for _, header := range form.File["evidence"] {
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
		result, err := h.uploader.UploadImage(c.Request.Context(), file, evidenceFolder)
		file.Close()
		if err != nil {
			continue
		}
		uploaded = append(uploaded, result.URL)
	}

	return req, uploaded, nil
}

// @Summary Submit a scam report
// @Tags reports
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body CreateReportRequest true "Report"
// @Success 201 {object} response.APIResponse{data=Report}
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	req, uploaded, err := h.parseCreateRequest(c)
	if err != nil {
		response.BadRequest(c, "Invalid report payload")
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		response.BadRequest(c, "Description is required")
		return
	}
	if req.Channel != "" && !IsValidChannel(req.Channel) {
		response.BadRequest(c, "Channel must be bank or website")
		return
	}
	if req.ReporterEmail != "" && !validator.IsValidEmail(req.ReporterEmail) {
		response.BadRequest(c, "Invalid reporter email")
		return
	}

	report := &Report{
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		ReporterZalo:  req.ReporterZalo,
		ReporterPhone: req.ReporterPhone,
		TargetName:    req.TargetName,
		TargetContact: mergeTargetContact(req),
		Channel:       req.Channel,
		ReportType:    NormalizeReportType(req.ReportType),
		Category:      req.Category,
		Description:   description,
		Amount:        normalize.Number(req.Amount, 0),
		Agreement:     normalize.Bool(req.Agreement),
		Evidence:      append(normalize.StringList(req.Evidence), uploaded...),
	}

	if req.ProfileID != "" {
		profileID, err := primitive.ObjectIDFromHex(req.ProfileID)
		if err != nil {
			response.BadRequest(c, "Invalid profile ID")
			return
		}
		report.ProfileID = &profileID
	}

	// Profile counters stay untouched until an admin verifies the report.
	if err := h.repo.Create(c.Request.Context(), report); err != nil {
		response.InternalServerError(c, "Failed to submit report")
		return
	}

	response.CreatedMessage(c, report, "Report submitted, pending review")
}

// @Summary Verified reports for the public site
// @Tags reports
// @Produce json
// @Success 200 {object} response.PaginatedResponse{data=[]Report}
// @Router /reports/public [get]
func (h *Handler) GetPublicReports(c *gin.Context) {
	params := pagination.Parse(c, 10, 50)

	items, total, err := h.repo.List(c.Request.Context(),
		bson.M{"status": StatusVerified}, params.Skip(), int64(params.Limit))
	if err != nil {
		response.InternalServerError(c, "Failed to load reports")
		return
	}

	response.Paginated(c, items, total, params.Limit, params.Page)
}

// @Summary Homepage report stats
// @Tags reports
// @Produce json
// @Success 200 {object} response.APIResponse{data=Stats}
// @Router /reports/stats [get]
func (h *Handler) GetReportStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load stats")
		return
	}
	response.Success(c, stats)
}

// @Summary Verified reports older than seven days
// @Tags reports
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]Report}
// @Router /reports/last7days [get]
func (h *Handler) GetReportsLast7Days(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	cutoff := time.Now().AddDate(0, 0, -7)
	items, total, err := h.repo.List(c.Request.Context(),
		bson.M{"status": StatusVerified, "createdAt": bson.M{"$lte": cutoff}}, 0, limit)
	if err != nil {
		response.InternalServerError(c, "Failed to load reports")
		return
	}

	response.Paginated(c, items, total, int(limit), 1)
}

// @Summary All reports (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {object} response.PaginatedResponse{data=[]Report}
// @Router /reports [get]
func (h *Handler) GetAllReports(c *gin.Context) {
	params := pagination.Parse(c, 10, 100)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	items, total, err := h.repo.List(c.Request.Context(), filter, params.Skip(), int64(params.Limit))
	if err != nil {
		response.InternalServerError(c, "Failed to load reports")
		return
	}

	response.Paginated(c, items, total, params.Limit, params.Page)
}

// @Summary Report detail
// @Description Public view shows verified reports and counts the view;
// @Description the admin panel (X-Admin-View) sees every status without
// @Description inflating the counter.
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.APIResponse{data=Report}
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	isAdmin := isAdminRequest(c)
	adminView := c.Query("adminView") == "true" || c.GetHeader("X-Admin-View") == "true"

	if adminView {
		if !isAdmin {
			response.Forbidden(c, "Admin access required")
			return
		}
		report, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				response.NotFound(c, "Report not found")
				return
			}
			response.InternalServerError(c, "Failed to load report")
			return
		}
		response.Success(c, report)
		return
	}

	report, err := h.repo.GetVerifiedAndCountView(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// Admins browsing the public page may still open unverified reports.
			if isAdmin {
				if adminReport, adminErr := h.repo.GetByID(c.Request.Context(), id); adminErr == nil {
					response.Success(c, adminReport)
					return
				}
			}
			response.NotFound(c, "Report not found")
			return
		}
		response.InternalServerError(c, "Failed to load report")
		return
	}

	response.Success(c, report)
}

// @Summary Reports linked to a profile
// @Tags reports
// @Produce json
// @Param profileId path string true "Profile ID"
// @Success 200 {object} response.APIResponse{data=[]Report}
// @Router /reports/profile/{profileId} [get]
func (h *Handler) GetReportsByProfile(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("profileId"))
	if err != nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	items, err := h.repo.ListByProfile(c.Request.Context(), profileID, isAdminRequest(c))
	if err != nil {
		response.InternalServerError(c, "Failed to load reports")
		return
	}

	response.Success(c, items)
}

// @Summary Update report status
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} response.APIResponse{data=Report}
// @Router /reports/{id}/status [put]
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status must be pending, verified, rejected or resolved")
		return
	}

	report, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Report not found")
		case apperrors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "Invalid status")
		default:
			response.InternalServerError(c, "Failed to update status")
		}
		return
	}

	response.Success(c, report)
}

// @Summary Delete report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.APIResponse
// @Router /reports/{id} [delete]
func (h *Handler) DeleteReport(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		response.InternalServerError(c, "Failed to delete report")
		return
	}

	response.SuccessMessage(c, nil, "Report deleted")
}

// @Summary Comments on a verified report
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.PaginatedResponse{data=[]Comment}
// @Router /reports/{id}/comments [get]
func (h *Handler) GetReportComments(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	report, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil || report.Status != StatusVerified {
		response.NotFound(c, "Report not found")
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

// @Summary Add a comment to a verified report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} response.APIResponse{data=Comment}
// @Router /reports/{id}/comments [post]
func (h *Handler) AddReportComment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid report ID")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid comment payload")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, req.Nickname, req.Content)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Report not found")
		case apperrors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "Comment content is required")
		default:
			response.InternalServerError(c, "Failed to add comment")
		}
		return
	}

	response.Created(c, comment)
}

// @Summary Delete a report comment (admin)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} response.APIResponse
// @Router /reports/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteReportComment(c *gin.Context) {
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

// @Summary Recent comments across verified reports
// @Tags reports
// @Produce json
// @Success 200 {object} response.APIResponse{data=[]Comment}
// @Router /comments/recent [get]
func (h *Handler) RecentComments(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	comments, err := h.repo.RecentComments(c.Request.Context(), limit)
	if err != nil {
		response.InternalServerError(c, "Failed to load comments")
		return
	}

	// Drop comments whose parent report is not publicly visible.
	filtered := make([]Comment, 0, len(comments))
	for _, comment := range comments {
		report, err := h.repo.GetByID(c.Request.Context(), comment.ReportID)
		if err != nil || report.Status != StatusVerified {
			continue
		}
		filtered = append(filtered, comment)
	}

	response.Success(c, filtered)
}
