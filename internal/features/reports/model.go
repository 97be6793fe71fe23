package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses. Only verified reports are publicly visible, and only
// they count against a profile's negative counter.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
	StatusResolved = "resolved"
)

// Channels a scam was run through.
const (
	ChannelBank    = "bank"
	ChannelWebsite = "website"
)

// Report types.
const (
	TypeScam        = "scam"
	TypeFraud       = "fraud"
	TypeFakeProfile = "fake-profile"
	TypeOther       = "other"
)

// Report is a user-submitted fraud accusation.
type Report struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReporterName  string              `bson:"reporterName,omitempty" json:"reporterName,omitempty"`
	ReporterEmail string              `bson:"reporterEmail,omitempty" json:"reporterEmail,omitempty"`
	ReporterZalo  string              `bson:"reporterZalo,omitempty" json:"reporterZalo,omitempty"`
	ReporterPhone string              `bson:"reporterPhone,omitempty" json:"reporterPhone,omitempty"`
	TargetName    string              `bson:"targetName,omitempty" json:"targetName,omitempty"`
	TargetContact TargetContact       `bson:"targetContact" json:"targetContact"`
	Channel       string              `bson:"channel,omitempty" json:"channel,omitempty"`
	ReportType    string              `bson:"reportType" json:"reportType"`
	Category      string              `bson:"category,omitempty" json:"category,omitempty"`
	Description   string              `bson:"description" json:"description"`
	Evidence      []string            `bson:"evidence" json:"evidence"`
	Amount        float64             `bson:"amount" json:"amount"`
	Agreement     bool                `bson:"agreement" json:"agreement"`
	Views         int                 `bson:"views" json:"views"`
	CommentCount  int                 `bson:"commentCount" json:"commentCount"`
	Status        string              `bson:"status" json:"status"`
	ProfileID     *primitive.ObjectID `bson:"profileId,omitempty" json:"profileId,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TargetContact identifies the accused party across channels.
type TargetContact struct {
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Facebook    string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Zalo        string `bson:"zalo,omitempty" json:"zalo,omitempty"`
	BankAccount string `bson:"bankAccount,omitempty" json:"bankAccount,omitempty"`
	BankName    string `bson:"bankName,omitempty" json:"bankName,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
}

// Comment is an anonymous comment on a verified report.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID  primitive.ObjectID `bson:"reportId" json:"reportId"`
	Nickname  string             `bson:"nickname" json:"nickname"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateReportRequest is the loose submission payload. Form-originated
// fields (agreement, amount, evidence) arrive as strings or arrays and
// are coerced at the handler boundary; target contact details may come
// flat (targetPhone) or nested (targetContact.phone).
type CreateReportRequest struct {
	ReporterName  string `json:"reporterName"`
	ReporterEmail string `json:"reporterEmail"`
	ReporterZalo  string `json:"reporterZalo"`
	ReporterPhone string `json:"reporterPhone"`

	TargetName        string         `json:"targetName"`
	TargetContact     *TargetContact `json:"targetContact"`
	TargetPhone       string         `json:"targetPhone"`
	TargetFacebook    string         `json:"targetFacebook"`
	TargetZalo        string         `json:"targetZalo"`
	TargetBankAccount string         `json:"targetBankAccount"`
	TargetBankName    string         `json:"targetBankName"`
	TargetWebsite     string         `json:"targetWebsite"`

	Channel     string      `json:"channel"`
	ReportType  string      `json:"reportType"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      interface{} `json:"amount"`
	Agreement   interface{} `json:"agreement"`
	Evidence    interface{} `json:"evidence"`
	ProfileID   string      `json:"profileId"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending verified rejected resolved"`
}

type AddCommentRequest struct {
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
}

// Stats summarizes report activity for the homepage.
type Stats struct {
	Verified      int64 `json:"verified"`
	Pending       int64 `json:"pending"`
	Comments      int64 `json:"comments"`
	BankScamCount int64 `json:"bankScamCount"`
	FBScamCount   int64 `json:"fbScamCount"`
}
