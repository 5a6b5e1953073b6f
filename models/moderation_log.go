package models

import "time"

type ModerationAction string

const (
	ActionApprove ModerationAction = "APPROVE"
	ActionReject  ModerationAction = "REJECT"
)

// ModerationLog is an append-only audit trail; one row per decision.
type ModerationLog struct {
	ID        uint             `json:"id" gorm:"primarykey"`
	ListingID uint             `json:"listing_id" gorm:"not null;index"`
	AdminID   uint             `json:"admin_id" gorm:"not null"`
	Admin     *User            `json:"-" gorm:"foreignKey:AdminID"`
	Action    ModerationAction `json:"action" gorm:"type:varchar(16);not null"`
	Reason    *string          `json:"reason"`
	CreatedAt time.Time        `json:"created_at"`
}
