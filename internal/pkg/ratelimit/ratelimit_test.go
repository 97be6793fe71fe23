package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllow_WithinLimit(t *testing.T) {
	lim := New(3, time.Minute)

	require.True(t, lim.Allow("a"))
	require.True(t, lim.Allow("a"))
	require.True(t, lim.Allow("a"))
	require.False(t, lim.Allow("a"))

	// other keys are unaffected
	require.True(t, lim.Allow("b"))
}

func TestAllow_WindowExpiry(t *testing.T) {
	lim := New(1, 10*time.Millisecond)

	require.True(t, lim.Allow("a"))
	require.False(t, lim.Allow("a"))

	time.Sleep(15 * time.Millisecond)
	require.True(t, lim.Allow("a"))
}

func TestRemaining(t *testing.T) {
	lim := New(2, time.Minute)
	require.Equal(t, 2, lim.Remaining("a"))
	lim.Allow("a")
	require.Equal(t, 1, lim.Remaining("a"))
	lim.Allow("a")
	lim.Allow("a") // denied, should not consume
	require.Equal(t, 0, lim.Remaining("a"))
}

func TestMiddleware_Exceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["message"])
}
