package account

import "time"

type Account struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"accountId"`
	MemberID     string    `gorm:"type:uuid;not null;uniqueIndex" json:"memberId"`
	Username     string    `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Email        string    `json:"email,omitempty"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Account) TableName() string { return "accounts" }

// CreateInput carries a plaintext password; the service hashes it before
// anything is persisted.
type CreateInput struct {
	MemberID string
	Username string
	Password string
	Email    string
	IsAdmin  bool
}

type UpdateInput struct {
	Username *string
	Password *string
	Email    *string
	IsAdmin  *bool
}
