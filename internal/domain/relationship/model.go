package relationship

import "time"

const (
	TypeFather = "Father"
	TypeMother = "Mother"
)

// Type is a static lookup record tagging parent-child edges ("Father",
// "Mother").
type Type struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"relaTypeId"`
	Name      string    `gorm:"uniqueIndex;not null" json:"relaTypeName"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Type) TableName() string { return "relationship_types" }

type ParentChildRelationship struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"relationshipId"`
	ParentID   string    `gorm:"type:uuid;not null;index" json:"parentId"`
	ChildID    string    `gorm:"type:uuid;not null;index" json:"childId"`
	RelaTypeID string    `gorm:"type:uuid;not null" json:"relaTypeId"`
	BirthOrder int       `gorm:"not null;default:1" json:"birthOrder"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (ParentChildRelationship) TableName() string { return "parent_child_relationships" }

type CreateInput struct {
	ParentID   string
	ChildID    string
	RelaTypeID string
	BirthOrder int
}

type UpdateInput struct {
	RelaTypeID *string
	BirthOrder *int
}
