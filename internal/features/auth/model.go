package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. Super admins can manage other admin accounts.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// User is a back-office account. Regular visitors are anonymous; only
// moderators and super admins authenticate.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Nickname     string             `bson:"nickname" json:"nickname"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	ContactInfo  ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	BankAccounts []BankAccount      `bson:"bankAccounts" json:"bankAccounts"`
	// Deposit the admin holds as buyer protection, shown on the site.
	InsuranceFund      int64      `bson:"insuranceFund" json:"insuranceFund"`
	InsuranceStartDate *time.Time `bson:"insuranceStartDate,omitempty" json:"insuranceStartDate,omitempty"`
	LastLogin          *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type ContactInfo struct {
	Facebook  FacebookRef `bson:"facebook" json:"facebook"`
	Zalo      string      `bson:"zalo" json:"zalo"`
	Phone     string      `bson:"phone" json:"phone"`
	Messenger string      `bson:"messenger" json:"messenger"`
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

// IsAdmin reports whether the user holds any moderation role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsSuperAdmin reports whether the user can manage other admins.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin super-admin"`
}

type UpdateAdminRequest struct {
	FullName     string        `json:"fullName"`
	Nickname     string        `json:"nickname"`
	Avatar       string        `json:"avatar"`
	ContactInfo  *ContactInfo  `json:"contactInfo"`
	BankAccounts []BankAccount `json:"bankAccounts"`
	IsActive     *bool         `json:"isActive"`
}
