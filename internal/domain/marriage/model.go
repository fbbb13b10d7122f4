package marriage

import "time"

type Marriage struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"marriageId"`
	HusbandID    string     `gorm:"type:uuid;not null;index" json:"husbandId"`
	WifeID       string     `gorm:"type:uuid;not null;index" json:"wifeId"`
	IsDivorced   bool       `gorm:"not null;default:false" json:"isDivorced"`
	MarriedDate  *time.Time `json:"marriedDate,omitempty"`
	DivorcedDate *time.Time `json:"divorcedDate,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Marriage) TableName() string { return "marriages" }

type CreateInput struct {
	HusbandID   string
	WifeID      string
	MarriedDate *time.Time
}

type UpdateInput struct {
	IsDivorced   *bool
	MarriedDate  *time.Time
	DivorcedDate *time.Time
}
