package repositories

import (
	"auto-market/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	GetMakes() ([]models.Make, error)
	GetMakeByID(id uint) (*models.Make, error)
	GetModelsByMake(makeID uint) ([]models.Model, error)
	GetModelByID(id uint) (*models.Model, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetMakes() ([]models.Make, error) {
	var makes []models.Make
	err := r.db.Order("name asc").Find(&makes).Error
	return makes, err
}

func (r *catalogRepository) GetMakeByID(id uint) (*models.Make, error) {
	var make models.Make
	err := r.db.First(&make, id).Error
	return &make, err
}

func (r *catalogRepository) GetModelsByMake(makeID uint) ([]models.Model, error) {
	var items []models.Model
	err := r.db.Where("make_id = ?", makeID).Order("name asc").Find(&items).Error
	return items, err
}

func (r *catalogRepository) GetModelByID(id uint) (*models.Model, error) {
	var model models.Model
	err := r.db.First(&model, id).Error
	return &model, err
}
