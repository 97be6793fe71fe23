package marketplace

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing statuses. Only approved listings are publicly visible, and
// only they carry an expiry.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusSold     = "sold"
)

// Listing categories.
const (
	CategoryAccount = "account"
	CategoryItem    = "item"
	CategoryService = "service"
	CategoryOther   = "other"
)

// ExpiryWindow is how long an approved listing stays live.
const ExpiryWindow = 7 * 24 * time.Hour

// DefaultRejectionReason is stored when an admin rejects without a reason.
const DefaultRejectionReason = "Violates marketplace rules"

// Listing is a classified ad. It starts pending and becomes publicly
// visible only after an admin approves it, which also stamps its expiry.
type Listing struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description" json:"description"`
	Price           float64             `bson:"price" json:"price"`
	PriceUnit       string              `bson:"priceUnit" json:"priceUnit"`
	Images          []string            `bson:"images" json:"images"`
	Category        string              `bson:"category" json:"category"`
	Contact         Contact             `bson:"contact" json:"contact"`
	SellerName      string              `bson:"sellerName" json:"sellerName"`
	SellerPhone     string              `bson:"sellerPhone,omitempty" json:"sellerPhone,omitempty"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Status          string              `bson:"status" json:"status"`
	RejectionReason string              `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	Views           int                 `bson:"views" json:"views"`
	CommentCount    int                 `bson:"commentCount" json:"commentCount"`
	IsFeatured      bool                `bson:"isFeatured" json:"isFeatured"`
	ApprovedAt      *time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy      *primitive.ObjectID `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ExpiresAt       *time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Contact holds the seller's reachable channels.
type Contact struct {
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Messenger string `bson:"messenger,omitempty" json:"messenger,omitempty"`
	Zalo      string `bson:"zalo,omitempty" json:"zalo,omitempty"`
	Telegram  string `bson:"telegram,omitempty" json:"telegram,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
}

// ListingComment is a public comment on an approved listing.
type ListingComment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ListingID primitive.ObjectID  `bson:"marketplaceId" json:"marketplaceId"`
	Nickname  string              `bson:"nickname" json:"nickname"`
	Content   string              `bson:"content" json:"content"`
	UserID    *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// CreateListingRequest tolerates both JSON and multipart form payloads:
// prices arrive as strings, images as string or array, contact either
// nested or as flat contact* keys.
type CreateListingRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	PriceUnit   string      `json:"priceUnit"`
	Images      interface{} `json:"images"`
	Category    string      `json:"category"`
	SellerName  string      `json:"sellerName"`
	SellerPhone string      `json:"sellerPhone"`

	Contact          *Contact `json:"contact"`
	ContactPhone     string   `json:"contactPhone"`
	ContactFacebook  string   `json:"contactFacebook"`
	ContactMessenger string   `json:"contactMessenger"`
	ContactZalo      string   `json:"contactZalo"`
	ContactTelegram  string   `json:"contactTelegram"`
	ContactEmail     string   `json:"contactEmail"`
}

// RejectListingRequest carries the optional rejection reason.
type RejectListingRequest struct {
	Reason string `json:"reason"`
}

// AddCommentRequest is a public comment submission.
type AddCommentRequest struct {
	Nickname string `json:"nickname"`
	Content  string `json:"content" binding:"required"`
}

// Stats feeds the marketplace dashboard widgets.
type Stats struct {
	Approved   int64 `json:"approved"`
	Pending    int64 `json:"pending"`
	Sold       int64 `json:"sold"`
	TotalViews int64 `json:"totalViews"`
}

// SweepResult reports what one expiry pass did.
type SweepResult struct {
	Backfilled int `json:"backfilled"`
	Expired    int `json:"expired"`
}
