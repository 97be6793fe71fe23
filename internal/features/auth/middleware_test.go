package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/scamwatch/api-go/internal/config"
	"github.com/scamwatch/api-go/internal/pkg/token"
	apperrors "github.com/scamwatch/api-go/pkg/errors"
)

type fakeUserStore struct {
	users map[primitive.ObjectID]*User
}

func (s *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpireHours: 1}
}

func newTestRouter(store UserStore, cfg *config.Config, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(store, cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(200, gin.H{"username": user.Username})
	})
	r.GET("/protected", handlers...)
	return r
}

func signedTokenFor(t *testing.T, user *User, secret string) string {
	t.Helper()
	signed, err := token.Generate(user.ID.Hex(), user.Username, user.Role, secret, time.Hour)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate_NoHeader(t *testing.T) {
	r := newTestRouter(&fakeUserStore{}, testConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	require.Equal(t, 401, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
}

func TestAuthenticate_ValidToken(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Username: "mod", Role: RoleAdmin, IsActive: true}
	store := &fakeUserStore{users: map[primitive.ObjectID]*User{user.ID: user}}
	cfg := testConfig()
	r := newTestRouter(store, cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedTokenFor(t, user, cfg.JWTSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Body.String(), "mod")
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Username: "mod", Role: RoleAdmin, IsActive: false}
	store := &fakeUserStore{users: map[primitive.ObjectID]*User{user.ID: user}}
	cfg := testConfig()
	r := newTestRouter(store, cfg)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedTokenFor(t, user, cfg.JWTSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestRequireSuperAdmin_ForbidsPlainAdmin(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Username: "mod", Role: RoleAdmin, IsActive: true}
	store := &fakeUserStore{users: map[primitive.ObjectID]*User{user.ID: user}}
	cfg := testConfig()
	r := newTestRouter(store, cfg, RequireSuperAdmin())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedTokenFor(t, user, cfg.JWTSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 403, w.Code)
}

func TestRequireAdmin_AllowsSuperAdmin(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Username: "root", Role: RoleSuperAdmin, IsActive: true}
	store := &fakeUserStore{users: map[primitive.ObjectID]*User{user.ID: user}}
	cfg := testConfig()
	r := newTestRouter(store, cfg, RequireAdmin())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedTokenFor(t, user, cfg.JWTSecret))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
}
