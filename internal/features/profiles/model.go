package profiles

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Risk levels shown next to a profile on the public site.
const (
	RiskSafe    = "safe"
	RiskWarning = "warning"
	RiskDanger  = "danger"
	RiskUnknown = "unknown"
)

// Profile is a tracked real-world actor (person or account) that reports
// can point at.
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	ContactInfo  ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	BankAccounts []BankAccount      `bson:"bankAccounts" json:"bankAccounts"`
	// Deposit backing this profile's trades, if any.
	InsuranceFund int64  `bson:"insuranceFund" json:"insuranceFund"`
	RiskLevel     string `bson:"riskLevel" json:"riskLevel"`
	// ReportCount.Negative is a denormalized cache of how many verified
	// reports point at this profile. The report collection's status field
	// is the source of truth; only the report service's verified-boundary
	// transitions may touch it, and only through IncrementNegativeReports.
	ReportCount ReportCount `bson:"reportCount" json:"reportCount"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

type ReportCount struct {
	Positive int `bson:"positive" json:"positive"`
	Negative int `bson:"negative" json:"negative"`
}

type ContactInfo struct {
	Facebook FacebookRef `bson:"facebook" json:"facebook"`
	Zalo     string      `bson:"zalo" json:"zalo"`
	Website  string      `bson:"website" json:"website"`
	Phone    string      `bson:"phone" json:"phone"`
}

type FacebookRef struct {
	ID   string `bson:"id" json:"id"`
	Link string `bson:"link" json:"link"`
}

type BankAccount struct {
	BankName      string `bson:"bankName" json:"bankName"`
	AccountNumber string `bson:"accountNumber" json:"accountNumber"`
	AccountHolder string `bson:"accountHolder" json:"accountHolder"`
}

type CreateProfileRequest struct {
	Name         string        `json:"name" binding:"required"`
	Avatar       string        `json:"avatar"`
	ContactInfo  ContactInfo   `json:"contactInfo"`
	BankAccounts []BankAccount `json:"bankAccounts"`
	RiskLevel    string        `json:"riskLevel" binding:"omitempty,oneof=safe warning danger unknown"`
}

type UpdateProfileRequest struct {
	Name         string        `json:"name"`
	Avatar       string        `json:"avatar"`
	ContactInfo  *ContactInfo  `json:"contactInfo"`
	BankAccounts []BankAccount `json:"bankAccounts"`
	RiskLevel    string        `json:"riskLevel" binding:"omitempty,oneof=safe warning danger unknown"`
	IsVerified   *bool         `json:"isVerified"`
}
