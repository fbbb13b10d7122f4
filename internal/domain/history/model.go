package history

import "time"

// FamilyHistoryRecord is a narrative chapter of a family's past. Records are
// addressed by a generated domain id (HIST-yyyymmdd-xxxxxxxx) in addition to
// the row key.
type FamilyHistoryRecord struct {
	ID                 string     `gorm:"type:uuid;primaryKey" json:"-"`
	HistoricalRecordID string     `gorm:"not null;uniqueIndex" json:"historicalRecordId"`
	FamilyID           string     `gorm:"type:uuid;not null;index" json:"familyId"`
	Title              string     `gorm:"column:title;not null" json:"historicalRecordTitle"`
	Summary            string     `gorm:"column:summary" json:"historicalRecordSummary,omitempty"`
	Details            string     `gorm:"column:details" json:"historicalRecordDetails,omitempty"`
	StartDate          time.Time  `gorm:"not null" json:"startDate"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (FamilyHistoryRecord) TableName() string { return "family_history_records" }

type CreateInput struct {
	FamilyID  string
	Title     string
	Summary   string
	Details   string
	StartDate time.Time
	EndDate   *time.Time
}

type UpdateInput struct {
	Title     *string
	Summary   *string
	Details   *string
	StartDate *time.Time
	EndDate   *time.Time
}

type SearchFilter struct {
	Title     string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type Page struct {
	Items       []FamilyHistoryRecord `json:"items"`
	TotalItems  int64                 `json:"totalItems"`
	CurrentPage int                   `json:"currentPage"`
	PageSize    int                   `json:"pageSize"`
	TotalPages  int                   `json:"totalPages"`
}
