package media

import "time"

// OwnerType discriminates which entity a media record hangs off. Only the
// enumerated values are accepted.
type OwnerType string

const (
	OwnerEvent         OwnerType = "event"
	OwnerMember        OwnerType = "member"
	OwnerFamilyHistory OwnerType = "family_history"
)

func (t OwnerType) Valid() bool {
	switch t {
	case OwnerEvent, OwnerMember, OwnerFamilyHistory:
		return true
	}
	return false
}

type Media struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"mediaId"`
	OwnerID   string    `gorm:"type:uuid;not null;index:idx_media_owner" json:"ownerId"`
	OwnerType OwnerType `gorm:"type:varchar(32);not null;index:idx_media_owner" json:"ownerType"`
	URL       string    `gorm:"not null" json:"url"`
	FileName  string    `gorm:"not null" json:"fileName"`
	MimeType  string    `json:"mimeType,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Media) TableName() string { return "media" }

// File is an uploaded file held in memory, as read from a multipart form.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

type UpdateInput struct {
	FileName *string
	MimeType *string
}
