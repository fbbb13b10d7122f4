package family

import "time"

type Family struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"familyId"`
	AdminAccountID *string   `gorm:"type:uuid" json:"adminAccountId,omitempty"`
	Name           string    `gorm:"not null" json:"familyName"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Family) TableName() string { return "families" }
