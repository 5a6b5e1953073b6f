package repositories

import (
	"auto-market/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Upsert(userID, listingID uint) error
	Delete(userID, listingID uint) error
	ListByUser(userID uint) ([]models.Favorite, error)
	ForListings(userID uint, listingIDs []uint) (map[uint]bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Upsert is idempotent: re-favoriting never duplicates and never errors.
func (r *favoriteRepository) Upsert(userID, listingID uint) error {
	favorite := models.Favorite{UserID: userID, ListingID: listingID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
}

func (r *favoriteRepository) Delete(userID, listingID uint) error {
	return r.db.Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepository) ForListings(userID uint, listingIDs []uint) (map[uint]bool, error) {
	marked := make(map[uint]bool)
	if userID == 0 || len(listingIDs) == 0 {
		return marked, nil
	}

	var favorites []models.Favorite
	err := r.db.Where("user_id = ? AND listing_id IN ?", userID, listingIDs).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	for _, favorite := range favorites {
		marked[favorite.ListingID] = true
	}
	return marked, nil
}
