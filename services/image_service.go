package services

import (
	"errors"
	"strings"

	"auto-market/models"
	"auto-market/repositories"

	"gorm.io/gorm"
)

type ImageService interface {
	AttachImages(listingID uint, images []models.IncomingImage, actor *models.User) error
	DeleteImage(listingID, imageID uint, actor *models.User) error
}

type imageService struct {
	listingRepo repositories.ListingRepository
	imageRepo   repositories.ImageRepository
}

func NewImageService(listingRepo repositories.ListingRepository, imageRepo repositories.ImageRepository) ImageService {
	return &imageService{listingRepo: listingRepo, imageRepo: imageRepo}
}

// AttachImages appends a batch to a listing. Sort order continues from the
// highest existing value; the first image ever attached becomes the cover.
func (s *imageService) AttachImages(listingID uint, images []models.IncomingImage, actor *models.User) error {
	listing, err := s.scoped(listingID, actor)
	if err != nil {
		return err
	}

	cleaned := make([]models.IncomingImage, 0, len(images))
	for _, image := range images {
		url := strings.TrimSpace(image.URL)
		if url == "" {
			continue
		}
		cleaned = append(cleaned, models.IncomingImage{URL: url, PublicID: image.PublicID})
	}
	if len(cleaned) == 0 {
		return models.ErrorValidation{Message: "images[] is required"}
	}

	maxSort, hasAny, err := s.imageRepo.MaxSortOrder(listing.ID)
	if err != nil {
		return err
	}
	hasCover := false
	if hasAny {
		hasCover, err = s.imageRepo.HasCover(listing.ID)
		if err != nil {
			return err
		}
	}

	start := 0
	if hasAny {
		start = maxSort + 1
	}

	batch := make([]models.ListingImage, 0, len(cleaned))
	for i, image := range cleaned {
		batch = append(batch, models.ListingImage{
			ListingID: listing.ID,
			URL:       image.URL,
			PublicID:  image.PublicID,
			SortOrder: start + i,
			IsCover:   !hasCover && i == 0,
		})
	}
	return s.imageRepo.CreateBatch(batch)
}

func (s *imageService) DeleteImage(listingID, imageID uint, actor *models.User) error {
	listing, err := s.scoped(listingID, actor)
	if err != nil {
		return err
	}

	err = s.imageRepo.DeleteWithCoverPromotion(listing.ID, imageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrorNotFound{Message: "image not found"}
	}
	return err
}

func (s *imageService) scoped(listingID uint, actor *models.User) (*models.Listing, error) {
	listing, err := s.listingRepo.GetScoped(listingID, actor.ID, actor.IsAdmin())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "listing not found"}
		}
		return nil, err
	}
	return listing, nil
}
