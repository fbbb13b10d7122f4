package event

import (
	"time"

	"family-tree-go/internal/domain/media"
)

type Event struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"eventId"`
	CreatedBy         string     `gorm:"type:uuid;not null" json:"createdBy"`
	RelaTypeName      string     `json:"relaTypeName,omitempty"`
	EventScope        string     `json:"eventScope,omitempty"`
	EventType         string     `json:"eventType,omitempty"`
	EventName         string     `gorm:"not null" json:"eventName"`
	EventDescription  string     `json:"eventDescription,omitempty"`
	GregorianDate     *time.Time `gorm:"column:gregorian_event_date" json:"gregorianEventDate,omitempty"`
	LunarDate         string     `gorm:"column:lunar_event_date" json:"lunarEventDate,omitempty"`
	RecurrenceRule    string     `json:"recurrenceRule,omitempty"`
	EndRecurrenceDate *time.Time `json:"endRecurrenceDate,omitempty"`
	Location          string     `json:"location,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Event) TableName() string { return "events" }

// EventWithMedia is an event joined with its attachments.
type EventWithMedia struct {
	Event
	Media []media.Media `json:"media"`
}

type CreateInput struct {
	CreatedBy         string
	RelaTypeName      string
	EventScope        string
	EventType         string
	EventName         string
	EventDescription  string
	GregorianDate     *time.Time
	LunarDate         string
	RecurrenceRule    string
	EndRecurrenceDate *time.Time
	Location          string
}

type UpdateInput struct {
	RelaTypeName      *string
	EventScope        *string
	EventType         *string
	EventName         *string
	EventDescription  *string
	GregorianDate     *time.Time
	LunarDate         *string
	RecurrenceRule    *string
	EndRecurrenceDate *time.Time
	Location          *string
	// IsChangeImage replaces existing attachments with the uploaded files
	// instead of merging; DeleteImageIDs are removed either way.
	IsChangeImage  bool
	DeleteImageIDs []string
}
