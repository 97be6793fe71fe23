package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds parsed paging query values.
type Params struct {
	Page  int
	Limit int
}

// Skip returns the number of documents to skip for the current page.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// Parse reads page/limit from the query string, falling back to
// defaultLimit and capping at maxLimit. Page is always >= 1.
func Parse(c *gin.Context, defaultLimit, maxLimit int) Params {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}
