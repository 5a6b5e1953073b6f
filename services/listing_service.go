package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"auto-market/models"
	"auto-market/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var engineVolumePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

type ListingService interface {
	Create(req models.CreateListingRequest, ownerID uint) (*models.Listing, error)
	GetOwned(id uint, actor *models.User) (*models.Listing, error)
	Update(id uint, req models.UpdateListingRequest, actor *models.User) error
	Delete(id uint, actor *models.User) error
	SubmitForReview(id uint, actor *models.User) error
	Approve(id uint, actor *models.User) error
	Reject(id uint, actor *models.User, reason string) error
	Unpublish(id uint, actor *models.User) error
	Search(params models.SearchParams, userID uint) (*models.SearchResult, error)
	GetPublicBySlug(slug string) (*models.Listing, error)
	ListOwned(actor *models.User, status string) ([]models.MyListingItem, error)
}

type listingService struct {
	listingRepo  repositories.ListingRepository
	imageRepo    repositories.ImageRepository
	favoriteRepo repositories.FavoriteRepository
	catalogRepo  repositories.CatalogRepository
	logger       *zap.Logger
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	imageRepo repositories.ImageRepository,
	favoriteRepo repositories.FavoriteRepository,
	catalogRepo repositories.CatalogRepository,
	logger *zap.Logger,
) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		imageRepo:    imageRepo,
		favoriteRepo: favoriteRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

func (s *listingService) Create(req models.CreateListingRequest, ownerID uint) (*models.Listing, error) {
	if req.MakeID == 0 || req.ModelID == 0 {
		return nil, models.ErrorValidation{Message: "makeId and modelId are required"}
	}
	if req.Year < 1900 || req.Year > 2100 {
		return nil, models.ErrorValidation{Message: "year must be between 1900 and 2100"}
	}
	if req.Price <= 0 {
		return nil, models.ErrorValidation{Message: "price must be greater than zero"}
	}
	if req.Mileage < 0 {
		return nil, models.ErrorValidation{Message: "mileage must not be negative"}
	}

	engineVolume, err := normalizeEngineVolume(req.EngineVolume)
	if err != nil {
		return nil, err
	}

	registration := strings.TrimSpace(req.Registration)
	if registration != "" && !models.ValidRegistration(registration) {
		return nil, models.ErrorValidation{Message: "unknown registration value"}
	}

	gearbox := strings.TrimSpace(req.Gearbox)
	if gearbox == "" {
		return nil, models.ErrorValidation{Message: "gearbox is required"}
	}
	if !models.ValidGearbox(gearbox) {
		return nil, models.ErrorValidation{Message: "unknown gearbox value"}
	}

	drive := strings.TrimSpace(req.Drive)
	if drive == "" {
		return nil, models.ErrorValidation{Message: "drive is required"}
	}
	if !models.ValidDrive(drive) {
		return nil, models.ErrorValidation{Message: "unknown drive value"}
	}

	make, err := s.catalogRepo.GetMakeByID(req.MakeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorValidation{Message: "make not found"}
		}
		return nil, err
	}
	model, err := s.catalogRepo.GetModelByID(req.ModelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorValidation{Message: "model not found"}
		}
		return nil, err
	}

	now := time.Now()
	listing := &models.Listing{
		Slug:         ListingSlug(make.Slug, model.Slug, req.Year, now),
		OwnerID:      ownerID,
		MakeID:       req.MakeID,
		ModelID:      req.ModelID,
		Title:        fmt.Sprintf("%s %s %d", make.Name, model.Name, req.Year),
		DealType:     models.DealTypeSale,
		Year:         req.Year,
		Price:        req.Price,
		Currency:     "RUB",
		Mileage:      req.Mileage,
		EngineVolume: engineVolume,
		Registration: nullable(registration),
		Gearbox:      &gearbox,
		Drive:        &drive,
		City:         nullable(req.City),
		Phone:        nullable(req.Phone),
		Description:  nullable(req.Description),
		Status:       models.StatusDraft,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) GetOwned(id uint, actor *models.User) (*models.Listing, error) {
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.GetByListing(listing.ID)
	if err != nil {
		return nil, err
	}
	listing.Images = images
	return listing, nil
}

func (s *listingService) Update(id uint, req models.UpdateListingRequest, actor *models.User) error {
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && listing.Status != models.StatusDraft {
		return models.ErrorInvalidState{Message: "only drafts can be edited"}
	}

	fields := map[string]interface{}{}

	if req.MakeID != nil {
		fields["make_id"] = *req.MakeID
	}
	if req.ModelID != nil {
		fields["model_id"] = *req.ModelID
	}
	if req.Year != nil {
		if *req.Year < 1900 || *req.Year > 2100 {
			return models.ErrorValidation{Message: "year must be between 1900 and 2100"}
		}
		fields["year"] = *req.Year
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return models.ErrorValidation{Message: "price must be greater than zero"}
		}
		fields["price"] = *req.Price
	}
	if req.Mileage != nil {
		if *req.Mileage < 0 {
			return models.ErrorValidation{Message: "mileage must not be negative"}
		}
		fields["mileage"] = *req.Mileage
	}
	if req.Registration != nil {
		value := strings.TrimSpace(*req.Registration)
		if value != "" && !models.ValidRegistration(value) {
			return models.ErrorValidation{Message: "unknown registration value"}
		}
		fields["registration"] = nullable(value)
	}
	if req.Gearbox != nil {
		value := strings.TrimSpace(*req.Gearbox)
		if value != "" && !models.ValidGearbox(value) {
			return models.ErrorValidation{Message: "unknown gearbox value"}
		}
		fields["gearbox"] = nullable(value)
	}
	if req.Drive != nil {
		value := strings.TrimSpace(*req.Drive)
		if value != "" && !models.ValidDrive(value) {
			return models.ErrorValidation{Message: "unknown drive value"}
		}
		fields["drive"] = nullable(value)
	}

	// City, phone and description are always overwritten, absent means NULL.
	fields["city"] = nullable(req.City)
	fields["phone"] = nullable(req.Phone)
	fields["description"] = nullable(req.Description)

	return s.listingRepo.UpdateFields(listing.ID, fields)
}

func (s *listingService) Delete(id uint, actor *models.User) error {
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && listing.Status != models.StatusDraft {
		return models.ErrorInvalidState{Message: "only drafts can be deleted"}
	}
	return s.listingRepo.Delete(listing.ID)
}

// SubmitForReview moves DRAFT/REJECTED to PENDING_REVIEW for owners. Admins
// skip moderation and publish directly.
func (s *listingService) SubmitForReview(id uint, actor *models.User) error {
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return err
	}

	if actor.IsAdmin() {
		return s.listingRepo.UpdateFields(listing.ID, map[string]interface{}{
			"status":       models.StatusActive,
			"published_at": time.Now(),
		})
	}

	if listing.Status != models.StatusDraft && listing.Status != models.StatusRejected {
		return models.ErrorInvalidState{Message: "only drafts and rejected listings can be submitted for review"}
	}
	return s.listingRepo.UpdateFields(listing.ID, map[string]interface{}{
		"status": models.StatusPendingReview,
	})
}

func (s *listingService) Approve(id uint, actor *models.User) error {
	listing, err := s.loadForModeration(id, actor)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"status": models.StatusActive}
	if listing.PublishedAt == nil {
		fields["published_at"] = time.Now()
	}

	entry := &models.ModerationLog{
		ListingID: listing.ID,
		AdminID:   actor.ID,
		Action:    models.ActionApprove,
	}
	if err := s.listingRepo.UpdateStatusWithLog(listing.ID, fields, entry); err != nil {
		return err
	}

	s.logger.Info("listing approved",
		zap.Uint("listing_id", listing.ID),
		zap.Uint("admin_id", actor.ID))
	return nil
}

func (s *listingService) Reject(id uint, actor *models.User, reason string) error {
	listing, err := s.loadForModeration(id, actor)
	if err != nil {
		return err
	}

	entry := &models.ModerationLog{
		ListingID: listing.ID,
		AdminID:   actor.ID,
		Action:    models.ActionReject,
		Reason:    nullable(reason),
	}
	fields := map[string]interface{}{"status": models.StatusRejected}
	if err := s.listingRepo.UpdateStatusWithLog(listing.ID, fields, entry); err != nil {
		return err
	}

	s.logger.Info("listing rejected",
		zap.Uint("listing_id", listing.ID),
		zap.Uint("admin_id", actor.ID))
	return nil
}

// Unpublish archives from any status, for owner and admin alike. The breadth
// is intentional and covered by tests.
func (s *listingService) Unpublish(id uint, actor *models.User) error {
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return err
	}
	return s.listingRepo.UpdateFields(listing.ID, map[string]interface{}{
		"status": models.StatusArchived,
	})
}

func (s *listingService) Search(params models.SearchParams, userID uint) (*models.SearchResult, error) {
	if params.DealType == "" {
		params.DealType = models.DealTypeSale
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if params.PageSize > 50 {
		params.PageSize = 50
	}
	if params.Registration != "" && !models.ValidRegistration(params.Registration) {
		params.Registration = ""
	}

	listings, total, err := s.listingRepo.Search(params)
	if err != nil {
		return nil, err
	}

	ids := listingIDs(listings)
	covers, err := s.imageRepo.CoversForListings(ids)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.ForListings(userID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListingSummary, 0, len(listings))
	for _, listing := range listings {
		items = append(items, summarize(listing, covers, favorites))
	}

	return &models.SearchResult{
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		Items:    items,
	}, nil
}

func (s *listingService) GetPublicBySlug(slug string) (*models.Listing, error) {
	listing, err := s.listingRepo.GetActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "listing not found"}
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) ListOwned(actor *models.User, status string) ([]models.MyListingItem, error) {
	filter := models.ListingStatus("")
	switch models.ListingStatus(status) {
	case models.StatusDraft, models.StatusPendingReview, models.StatusActive,
		models.StatusRejected, models.StatusArchived:
		filter = models.ListingStatus(status)
	}

	listings, err := s.listingRepo.ListOwned(actor.ID, actor.IsAdmin(), filter)
	if err != nil {
		return nil, err
	}

	ids := listingIDs(listings)
	covers, err := s.imageRepo.CoversForListings(ids)
	if err != nil {
		return nil, err
	}
	reasons, err := s.listingRepo.LatestRejectReasons(ids)
	if err != nil {
		return nil, err
	}

	items := make([]models.MyListingItem, 0, len(listings))
	for _, listing := range listings {
		item := models.MyListingItem{
			ID:           listing.ID,
			Slug:         listing.Slug,
			Title:        listing.Title,
			Status:       listing.Status,
			Price:        listing.Price,
			Currency:     listing.Currency,
			Mileage:      listing.Mileage,
			City:         listing.City,
			CreatedAt:    listing.CreatedAt,
			RejectReason: reasons[listing.ID],
		}
		if url, ok := covers[listing.ID]; ok {
			item.CoverImageURL = &url
		}
		items = append(items, item)
	}
	return items, nil
}

// loadScoped applies the authorization order shared by every owner-facing
// operation: admins see any listing, everyone else only their own, and a
// foreign listing is indistinguishable from a missing one.
func (s *listingService) loadScoped(id uint, actor *models.User) (*models.Listing, error) {
	listing, err := s.listingRepo.GetScoped(id, actor.ID, actor.IsAdmin())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "listing not found"}
		}
		return nil, err
	}
	return listing, nil
}

func (s *listingService) loadForModeration(id uint, actor *models.User) (*models.Listing, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrorForbidden{Message: "admin role required"}
	}
	listing, err := s.loadScoped(id, actor)
	if err != nil {
		return nil, err
	}
	if listing.Status != models.StatusPendingReview {
		return nil, models.ErrorInvalidState{Message: "listing is not pending review"}
	}
	return listing, nil
}

func normalizeEngineVolume(raw string) (*string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	value = strings.ReplaceAll(value, ",", ".")
	if !engineVolumePattern.MatchString(value) {
		return nil, models.ErrorValidation{Message: "invalid engine volume"}
	}
	return &value, nil
}

func summarize(listing models.Listing, covers map[uint]string, favorites map[uint]bool) models.ListingSummary {
	item := models.ListingSummary{
		ID:           listing.ID,
		Slug:         listing.Slug,
		Title:        listing.Title,
		Price:        listing.Price,
		Currency:     listing.Currency,
		Mileage:      listing.Mileage,
		EngineVolume: listing.EngineVolume,
		City:         listing.City,
		CreatedAt:    listing.CreatedAt,
		IsTop:        listing.IsTop,
		IsUrgent:     listing.IsUrgent,
		IsSticker:    listing.IsSticker,
		IsFavorite:   favorites[listing.ID],
	}
	if url, ok := covers[listing.ID]; ok {
		item.CoverImageURL = &url
	}
	return item
}

func listingIDs(listings []models.Listing) []uint {
	ids := make([]uint, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}
	return ids
}

func nullable(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
