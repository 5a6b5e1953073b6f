package services

import (
	"auto-market/models"
	"auto-market/repositories"
)

type FavoriteService interface {
	Add(userID, listingID uint) error
	Remove(userID, listingID uint) error
	List(userID uint) ([]models.ListingSummary, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	imageRepo    repositories.ImageRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, imageRepo repositories.ImageRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, imageRepo: imageRepo}
}

func (s *favoriteService) Add(userID, listingID uint) error {
	if listingID == 0 {
		return models.ErrorValidation{Message: "listingId is required"}
	}
	return s.favoriteRepo.Upsert(userID, listingID)
}

func (s *favoriteService) Remove(userID, listingID uint) error {
	if listingID == 0 {
		return models.ErrorValidation{Message: "listingId is required"}
	}
	return s.favoriteRepo.Delete(userID, listingID)
}

func (s *favoriteService) List(userID uint) ([]models.ListingSummary, error) {
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.ListingID)
	}
	covers, err := s.imageRepo.CoversForListings(ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListingSummary, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.Listing == nil {
			continue
		}
		item := summarize(*favorite.Listing, covers, nil)
		item.IsFavorite = true
		items = append(items, item)
	}
	return items, nil
}
