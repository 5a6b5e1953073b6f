package repositories

import (
	"fmt"

	"auto-market/models"

	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(listing *models.Listing) error
	GetScoped(id uint, userID uint, isAdmin bool) (*models.Listing, error)
	GetActiveBySlug(slug string) (*models.Listing, error)
	Update(listing *models.Listing) error
	UpdateFields(id uint, fields map[string]interface{}) error
	UpdateStatusWithLog(id uint, fields map[string]interface{}, entry *models.ModerationLog) error
	Delete(id uint) error
	Search(params models.SearchParams) ([]models.Listing, int64, error)
	ListOwned(ownerID uint, isAdmin bool, status models.ListingStatus) ([]models.Listing, error)
	LatestRejectReasons(listingIDs []uint) (map[uint]*string, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

// GetScoped loads a listing by id for admins, or by (id, owner) otherwise.
// A listing owned by someone else comes back as ErrRecordNotFound.
func (r *listingRepository) GetScoped(id uint, userID uint, isAdmin bool) (*models.Listing, error) {
	query := r.db.Where("id = ?", id)
	if !isAdmin {
		query = query.Where("owner_id = ?", userID)
	}

	var listing models.Listing
	err := query.First(&listing).Error
	return &listing, err
}

func (r *listingRepository) GetActiveBySlug(slug string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Preload("Make").Preload("Model").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_cover desc, sort_order asc, created_at asc")
		}).
		Where("slug = ? AND status = ?", slug, models.StatusActive).
		First(&listing).Error
	return &listing, err
}

func (r *listingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

func (r *listingRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatusWithLog applies a status transition and appends its moderation
// log entry in a single transaction. Partial application is never observable.
func (r *listingRepository) UpdateStatusWithLog(id uint, fields map[string]interface{}, entry *models.ModerationLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Listing{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *listingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Listing{}, id).Error
}

func (r *listingRepository) Search(params models.SearchParams) ([]models.Listing, int64, error) {
	var listings []models.Listing
	var total int64

	query := r.db.Model(&models.Listing{}).
		Where("status = ?", models.StatusActive).
		Where("deal_type = ?", params.DealType)

	if params.MakeID > 0 {
		query = query.Where("make_id = ?", params.MakeID)
	}
	if params.ModelID > 0 {
		query = query.Where("model_id = ?", params.ModelID)
	}
	if params.YearFrom > 0 {
		query = query.Where("year >= ?", params.YearFrom)
	}
	if params.YearTo > 0 {
		query = query.Where("year <= ?", params.YearTo)
	}
	if params.PriceFrom > 0 {
		query = query.Where("price >= ?", params.PriceFrom)
	}
	if params.PriceTo > 0 {
		query = query.Where("price <= ?", params.PriceTo)
	}
	if params.MileageFrom > 0 {
		query = query.Where("mileage >= ?", params.MileageFrom)
	}
	if params.MileageTo > 0 {
		query = query.Where("mileage <= ?", params.MileageTo)
	}
	if params.City != "" {
		query = query.Where("city = ?", params.City)
	}
	if params.Registration != "" {
		query = query.Where("registration = ?", params.Registration)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, direction := "created_at", "desc"
	switch params.Ord {
	case "date_asc":
		column, direction = "created_at", "asc"
	case "price_asc":
		column, direction = "price", "asc"
	case "price_desc":
		column, direction = "price", "desc"
	case "mileage_asc":
		column, direction = "mileage", "asc"
	case "mileage_desc":
		column, direction = "mileage", "desc"
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).Limit(params.PageSize).
		Find(&listings).Error

	return listings, total, err
}

func (r *listingRepository) ListOwned(ownerID uint, isAdmin bool, status models.ListingStatus) ([]models.Listing, error) {
	query := r.db.Model(&models.Listing{})
	if !isAdmin {
		query = query.Where("owner_id = ?", ownerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var listings []models.Listing
	err := query.Order("created_at desc").Find(&listings).Error
	return listings, err
}

// LatestRejectReasons returns, per listing, the reason of its most recent
// REJECT log entry. Listings without a reject entry are absent from the map.
func (r *listingRepository) LatestRejectReasons(listingIDs []uint) (map[uint]*string, error) {
	reasons := make(map[uint]*string)
	if len(listingIDs) == 0 {
		return reasons, nil
	}

	var logs []models.ModerationLog
	err := r.db.Where("listing_id IN ? AND action = ?", listingIDs, models.ActionReject).
		Order("created_at desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	for _, entry := range logs {
		if _, seen := reasons[entry.ListingID]; !seen {
			reasons[entry.ListingID] = entry.Reason
		}
	}
	return reasons, nil
}
