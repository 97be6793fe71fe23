package banners

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a promotional image shown on the public site.
type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateBannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" binding:"required"`
	Link     string `json:"link"`
	IsActive *bool  `json:"isActive"`
}

type UpdateBannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
	IsActive *bool  `json:"isActive"`
}
