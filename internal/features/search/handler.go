package search

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamwatch/api-go/internal/features/profiles"
	"github.com/scamwatch/api-go/internal/features/reports"
	"github.com/scamwatch/api-go/internal/pkg/response"
)

const resultLimit = 20

type Handler struct {
	profilesCollection *mongo.Collection
	reportsCollection  *mongo.Collection
}

func NewHandler(db *mongo.Database) *Handler {
	return &Handler{
		profilesCollection: db.Collection("profiles"),
		reportsCollection:  db.Collection("reports"),
	}
}

// Result is the combined search payload: tracked profiles and the
// verified reports that mention the query.
type Result struct {
	Profiles    []profiles.Profile `json:"profiles"`
	ScamReports []reports.Report   `json:"scamReports"`
}

// CheckResult answers the quick lookups.
type CheckResult struct {
	Found   bool              `json:"found"`
	Profile *profiles.Profile `json:"profile,omitempty"`
}

func caseInsensitive(query string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
}

func (h *Handler) findProfiles(ctx context.Context, filter bson.M) ([]profiles.Profile, error) {
	cursor, err := h.profilesCollection.Find(ctx, filter, options.Find().SetLimit(resultLimit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	matches := []profiles.Profile{}
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (h *Handler) findReports(ctx context.Context, filter bson.M) ([]reports.Report, error) {
	cursor, err := h.reportsCollection.Find(ctx, filter, options.Find().SetLimit(resultLimit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	matches := []reports.Report{}
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// @Summary Search profiles and verified reports
// @Description Matches names, phone numbers, facebook IDs, zalo handles
// @Description and bank account numbers, case-insensitively.
// @Tags search
// @Produce json
// @Param query query string true "Search term"
// @Success 200 {object} response.APIResponse{data=Result}
// @Router /search [get]
func (h *Handler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		response.BadRequest(c, "Search query is required")
		return
	}

	pattern := caseInsensitive(query)
	ctx := c.Request.Context()

	matchedProfiles, err := h.findProfiles(ctx, bson.M{"$or": []bson.M{
		{"name": pattern},
		{"contactInfo.phone": pattern},
		{"contactInfo.facebook.id": pattern},
		{"contactInfo.zalo": pattern},
		{"bankAccounts.accountNumber": pattern},
	}})
	if err != nil {
		response.InternalServerError(c, "Search failed")
		return
	}

	matchedReports, err := h.findReports(ctx, bson.M{
		"status": reports.StatusVerified,
		"$or": []bson.M{
			{"targetContact.bankAccount": pattern},
			{"targetContact.phone": pattern},
			{"targetContact.facebook": pattern},
			{"targetName": pattern},
		},
	})
	if err != nil {
		response.InternalServerError(c, "Search failed")
		return
	}

	response.Success(c, Result{Profiles: matchedProfiles, ScamReports: matchedReports})
}

func (h *Handler) quickCheck(c *gin.Context, filter bson.M) {
	var profile profiles.Profile
	err := h.profilesCollection.FindOne(c.Request.Context(), filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			response.Success(c, CheckResult{Found: false})
			return
		}
		response.InternalServerError(c, "Lookup failed")
		return
	}

	response.Success(c, CheckResult{Found: true, Profile: &profile})
}

// @Summary Quick check by phone number
// @Tags search
// @Produce json
// @Param phone path string true "Phone number"
// @Success 200 {object} response.APIResponse{data=CheckResult}
// @Router /search/phone/{phone} [get]
func (h *Handler) CheckPhone(c *gin.Context) {
	h.quickCheck(c, bson.M{"contactInfo.phone": c.Param("phone")})
}

// @Summary Quick check by facebook ID
// @Tags search
// @Produce json
// @Param fbId path string true "Facebook ID"
// @Success 200 {object} response.APIResponse{data=CheckResult}
// @Router /search/facebook/{fbId} [get]
func (h *Handler) CheckFacebook(c *gin.Context) {
	h.quickCheck(c, bson.M{"contactInfo.facebook.id": c.Param("fbId")})
}
