package models

import "time"

type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_listing"`
	ListingID uint      `json:"listing_id" gorm:"not null;uniqueIndex:idx_favorites_user_listing"`
	Listing   *Listing  `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
