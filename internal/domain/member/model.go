package member

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Member struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"memberId"`
	FamilyID     string     `gorm:"type:uuid;not null;index" json:"familyId"`
	FirstName    string     `gorm:"not null" json:"firstName"`
	MiddleName   string     `json:"middleName,omitempty"`
	LastName     string     `gorm:"not null" json:"lastName"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	DateOfDeath  *time.Time `json:"dateOfDeath,omitempty"`
	PlaceOfBirth string     `json:"placeOfBirth,omitempty"`
	PlaceOfDeath string     `json:"placeOfDeath,omitempty"`
	IsAlive      bool       `gorm:"not null;default:true" json:"isAlive"`
	Generation   int        `gorm:"not null;default:0" json:"generation"`
	Gender       string     `gorm:"type:varchar(16);not null" json:"gender"`
	ShortSummary string     `json:"shortSummary,omitempty"`
	IsDeleted    bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Member) TableName() string { return "members" }

// Spouse points at the opposite side of a marriage: exactly one of the two
// fields is set on an enriched member.
type Spouse struct {
	HusbandID string `json:"husbandId,omitempty"`
	WifeID    string `json:"wifeId,omitempty"`
}

type Parent struct {
	FatherID string `json:"fatherId,omitempty"`
	MotherID string `json:"motherId,omitempty"`
}

// EnrichedMember is a member annotated with relationship data assembled at
// read time from the marriages and parent_child_relationships tables.
type EnrichedMember struct {
	Member
	Spouse   *Spouse  `json:"spouse,omitempty"`
	Parent   *Parent  `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
}

type CreateInput struct {
	FamilyID     string
	FirstName    string
	MiddleName   string
	LastName     string
	DateOfBirth  *time.Time
	DateOfDeath  *time.Time
	PlaceOfBirth string
	PlaceOfDeath string
	IsAlive      bool
	Generation   int
	Gender       string
	ShortSummary string
}

type UpdateInput struct {
	FirstName    *string
	MiddleName   *string
	LastName     *string
	DateOfBirth  *time.Time
	DateOfDeath  *time.Time
	PlaceOfBirth *string
	PlaceOfDeath *string
	IsAlive      *bool
	Generation   *int
	Gender       *string
	ShortSummary *string
}

// CreateSpouseInput describes a spouse to attach to an existing member. Family,
// generation and gender are derived from the base member.
type CreateSpouseInput struct {
	MemberID     string
	FirstName    string
	MiddleName   string
	LastName     string
	DateOfBirth  *time.Time
	DateOfDeath  *time.Time
	PlaceOfBirth string
	PlaceOfDeath string
	IsAlive      bool
	ShortSummary string
}

type CreateChildInput struct {
	ParentID       string
	ParentSpouseID string
	FirstName      string
	MiddleName     string
	LastName       string
	DateOfBirth    *time.Time
	DateOfDeath    *time.Time
	PlaceOfBirth   string
	PlaceOfDeath   string
	IsAlive        bool
	Gender         string
	ShortSummary   string
	BirthOrder     int
}

type CreateLeaderInput struct {
	FamilyID     string
	FirstName    string
	MiddleName   string
	LastName     string
	DateOfBirth  *time.Time
	PlaceOfBirth string
	Gender       string
	ShortSummary string
	Username     string
	Password     string
	Email        string
}

type SearchFilter struct {
	Search  string
	Email   string
	IsAlive *bool
	Gender  string
	Page    int
	Limit   int
}

// Page is the pagination envelope returned by SearchMembers.
type Page struct {
	Items       []Member `json:"items"`
	TotalItems  int64    `json:"totalItems"`
	CurrentPage int      `json:"currentPage"`
	PageSize    int      `json:"pageSize"`
	TotalPages  int      `json:"totalPages"`
}

func NewPage(items []Member, total int64, page, limit int) Page {
	if items == nil {
		items = []Member{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page{
		Items:       items,
		TotalItems:  total,
		CurrentPage: page,
		PageSize:    limit,
		TotalPages:  totalPages,
	}
}
