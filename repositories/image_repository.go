package repositories

import (
	"auto-market/models"

	"gorm.io/gorm"
)

type ImageRepository interface {
	GetByListing(listingID uint) ([]models.ListingImage, error)
	MaxSortOrder(listingID uint) (int, bool, error)
	HasCover(listingID uint) (bool, error)
	CreateBatch(images []models.ListingImage) error
	DeleteWithCoverPromotion(listingID, imageID uint) error
	CoversForListings(listingIDs []uint) (map[uint]string, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) GetByListing(listingID uint) ([]models.ListingImage, error) {
	var images []models.ListingImage
	err := r.db.Where("listing_id = ?", listingID).
		Order("is_cover desc, sort_order asc, created_at asc").
		Find(&images).Error
	return images, err
}

// MaxSortOrder reports the highest sort order for a listing and whether any
// image exists at all.
func (r *imageRepository) MaxSortOrder(listingID uint) (int, bool, error) {
	var image models.ListingImage
	err := r.db.Where("listing_id = ?", listingID).
		Order("sort_order desc").
		First(&image).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return image.SortOrder, true, nil
}

func (r *imageRepository) HasCover(listingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ListingImage{}).
		Where("listing_id = ? AND is_cover = ?", listingID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *imageRepository) CreateBatch(images []models.ListingImage) error {
	return r.db.Create(&images).Error
}

// DeleteWithCoverPromotion removes an image and, when it was the cover,
// promotes the next image in the same transaction so a listing with surviving
// images is never observed without a cover.
func (r *imageRepository) DeleteWithCoverPromotion(listingID, imageID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var image models.ListingImage
		if err := tx.Where("id = ? AND listing_id = ?", imageID, listingID).First(&image).Error; err != nil {
			return err
		}

		if err := tx.Delete(&image).Error; err != nil {
			return err
		}

		if !image.IsCover {
			return nil
		}

		var survivors []models.ListingImage
		if err := tx.Where("listing_id = ?", listingID).Find(&survivors).Error; err != nil {
			return err
		}

		next := models.NextCover(survivors)
		if next == nil {
			return nil
		}
		return tx.Model(&models.ListingImage{}).
			Where("id = ?", next.ID).
			Update("is_cover", true).Error
	})
}

func (r *imageRepository) CoversForListings(listingIDs []uint) (map[uint]string, error) {
	covers := make(map[uint]string)
	if len(listingIDs) == 0 {
		return covers, nil
	}

	var images []models.ListingImage
	err := r.db.Where("listing_id IN ? AND is_cover = ?", listingIDs, true).
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	for _, image := range images {
		covers[image.ListingID] = image.URL
	}
	return covers, nil
}
