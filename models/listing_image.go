package models

import (
	"sort"
	"time"
)

type ListingImage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ListingID uint      `json:"listing_id" gorm:"not null;uniqueIndex:idx_listing_images_sort"`
	URL       string    `json:"url" gorm:"not null"`
	PublicID  *string   `json:"public_id"`
	SortOrder int       `json:"sort_order" gorm:"not null;uniqueIndex:idx_listing_images_sort"`
	IsCover   bool      `json:"is_cover" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// NextCover picks the image that becomes cover after a deletion:
// isCover desc, sortOrder asc, createdAt asc. Returns nil for an empty slice.
func NextCover(images []ListingImage) *ListingImage {
	if len(images) == 0 {
		return nil
	}
	ordered := make([]ListingImage, len(images))
	copy(ordered, images)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsCover != ordered[j].IsCover {
			return ordered[i].IsCover
		}
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return &ordered[0]
}
