package services

import (
	"auto-market/models"
	"auto-market/repositories"
)

type CatalogService interface {
	GetMakes() ([]models.Make, error)
	GetModels(makeID uint) ([]models.Model, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) GetMakes() ([]models.Make, error) {
	return s.catalogRepo.GetMakes()
}

func (s *catalogService) GetModels(makeID uint) ([]models.Model, error) {
	if makeID == 0 {
		return []models.Model{}, nil
	}
	return s.catalogRepo.GetModelsByMake(makeID)
}
