package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, rawQuery string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return Parse(c, 10, 50)
}

func TestParse_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, int64(0), p.Skip())
}

func TestParse_Explicit(t *testing.T) {
	p := paramsFor(t, "page=3&limit=20")
	require.Equal(t, 3, p.Page)
	require.Equal(t, 20, p.Limit)
	require.Equal(t, int64(40), p.Skip())
}

func TestParse_CapsAndFloors(t *testing.T) {
	p := paramsFor(t, "page=0&limit=999")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 50, p.Limit)

	p = paramsFor(t, "page=abc&limit=-1")
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
}
