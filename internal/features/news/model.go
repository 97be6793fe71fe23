package news

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article categories.
const (
	CategoryAlert        = "alert"
	CategoryNews         = "news"
	CategoryGuide        = "guide"
	CategoryAnnouncement = "announcement"
	CategoryStatistics   = "statistics"
)

// Article is an editorial piece: scam warnings, guides, announcements.
type Article struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Excerpt     string              `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content     string              `bson:"content" json:"content"`
	Category    string              `bson:"category" json:"category"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	Author      *primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
	AuthorName  string              `bson:"authorName" json:"authorName"`
	Status      string              `bson:"status" json:"status"`
	Views       int                 `bson:"views" json:"views"`
	IsFeatured  bool                `bson:"isFeatured" json:"isFeatured"`
	PublishedAt time.Time           `bson:"publishedAt" json:"publishedAt"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CreateArticleRequest tolerates form submissions: isFeatured may arrive
// as a stringified boolean.
type CreateArticleRequest struct {
	Title      string      `json:"title" binding:"required"`
	Excerpt    string      `json:"excerpt"`
	Content    string      `json:"content" binding:"required"`
	Category   string      `json:"category"`
	Image      string      `json:"image"`
	Status     string      `json:"status"`
	IsFeatured interface{} `json:"isFeatured"`
}

// UpdateArticleRequest applies only the fields that are present.
type UpdateArticleRequest struct {
	Title      string      `json:"title"`
	Excerpt    string      `json:"excerpt"`
	Content    string      `json:"content"`
	Category   string      `json:"category"`
	Image      string      `json:"image"`
	Status     string      `json:"status"`
	IsFeatured interface{} `json:"isFeatured"`
}

// Stats feeds the news dashboard widgets.
type Stats struct {
	Published  int64 `json:"published"`
	Draft      int64 `json:"draft"`
	TotalViews int64 `json:"totalViews"`
}

// NormalizeCategory maps unknown or empty categories to "news".
func NormalizeCategory(s string) string {
	switch s {
	case CategoryAlert, CategoryGuide, CategoryAnnouncement, CategoryStatistics:
		return s
	default:
		return CategoryNews
	}
}
