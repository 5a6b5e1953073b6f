package models

import "time"

type ListingStatus string

const (
	StatusDraft         ListingStatus = "DRAFT"
	StatusPendingReview ListingStatus = "PENDING_REVIEW"
	StatusActive        ListingStatus = "ACTIVE"
	StatusRejected      ListingStatus = "REJECTED"
	StatusArchived      ListingStatus = "ARCHIVED"
)

const DealTypeSale = "SALE"

var Registrations = []string{"NOT_CLEARED", "RF", "RSO"}
var Gearboxes = []string{"MANUAL", "AUTOMATIC", "CVT", "AMT", "OTHER"}
var Drives = []string{"FWD", "RWD", "AWD", "OTHER"}

type Listing struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Slug    string `json:"slug" gorm:"uniqueIndex;not null"`
	OwnerID uint   `json:"owner_id" gorm:"not null;index"`
	Owner   *User  `json:"-" gorm:"foreignKey:OwnerID"`

	MakeID  uint   `json:"make_id" gorm:"not null;index"`
	Make    *Make  `json:"make,omitempty" gorm:"foreignKey:MakeID"`
	ModelID uint   `json:"model_id" gorm:"not null;index"`
	Model   *Model `json:"model,omitempty" gorm:"foreignKey:ModelID"`

	Title    string `json:"title" gorm:"not null"`
	DealType string `json:"deal_type" gorm:"type:varchar(16);default:'SALE';index"`

	Year         int     `json:"year" gorm:"not null"`
	Price        float64 `json:"price" gorm:"not null"`
	Currency     string  `json:"currency" gorm:"type:varchar(8);default:'RUB'"`
	Mileage      int     `json:"mileage" gorm:"not null"`
	EngineVolume *string `json:"engine_volume"`

	Registration *string `json:"registration" gorm:"type:varchar(16)"`
	Gearbox      *string `json:"gearbox" gorm:"type:varchar(16)"`
	Drive        *string `json:"drive" gorm:"type:varchar(16)"`

	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`

	IsTop     bool `json:"is_top" gorm:"default:false"`
	IsUrgent  bool `json:"is_urgent" gorm:"default:false"`
	IsSticker bool `json:"is_sticker" gorm:"default:false"`

	Status      ListingStatus `json:"status" gorm:"type:varchar(24);default:'DRAFT';index"`
	PublishedAt *time.Time    `json:"published_at"`

	Images         []ListingImage  `json:"images,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	ModerationLogs []ModerationLog `json:"-" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRegistration(v string) bool { return contains(Registrations, v) }
func ValidGearbox(v string) bool      { return contains(Gearboxes, v) }
func ValidDrive(v string) bool        { return contains(Drives, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
