package models

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type AuthResponse struct {
	User User `json:"user"`
}

type CreateListingRequest struct {
	MakeID       uint    `json:"makeId" validate:"required"`
	ModelID      uint    `json:"modelId" validate:"required"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	EngineVolume string  `json:"engineVolume"`
	Registration string  `json:"registration"`
	Gearbox      string  `json:"gearbox"`
	Drive        string  `json:"drive"`
	City         string  `json:"city"`
	Phone        string  `json:"phone"`
	Description  string  `json:"description"`
}

// UpdateListingRequest carries asymmetric merge semantics: pointer fields are
// applied only when the key is present in the patch, while City/Phone/
// Description are always overwritten (empty means NULL). This mirrors the
// documented contract, not an accident.
type UpdateListingRequest struct {
	MakeID       *uint    `json:"makeId"`
	ModelID      *uint    `json:"modelId"`
	Year         *int     `json:"year"`
	Price        *float64 `json:"price"`
	Mileage      *int     `json:"mileage"`
	Registration *string  `json:"registration"`
	Gearbox      *string  `json:"gearbox"`
	Drive        *string  `json:"drive"`
	City         string   `json:"city"`
	Phone        string   `json:"phone"`
	Description  string   `json:"description"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type SearchParams struct {
	DealType     string  `form:"dealType"`
	MakeID       uint    `form:"makeId"`
	ModelID      uint    `form:"modelId"`
	YearFrom     int     `form:"yearFrom"`
	YearTo       int     `form:"yearTo"`
	PriceFrom    float64 `form:"priceFrom"`
	PriceTo      float64 `form:"priceTo"`
	MileageFrom  int     `form:"mileageFrom"`
	MileageTo    int     `form:"mileageTo"`
	City         string  `form:"city"`
	Registration string  `form:"registration"`
	Ord          string  `form:"ord"`
	Page         int     `form:"page,default=1"`
	PageSize     int     `form:"pageSize,default=20"`
}

type ListingSummary struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Mileage       int       `json:"mileage"`
	EngineVolume  *string   `json:"engine_volume"`
	City          *string   `json:"city"`
	CreatedAt     time.Time `json:"created_at"`
	IsTop         bool      `json:"is_top"`
	IsUrgent      bool      `json:"is_urgent"`
	IsSticker     bool      `json:"is_sticker"`
	CoverImageURL *string   `json:"cover_image_url"`
	IsFavorite    bool      `json:"is_favorite"`
}

type SearchResult struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []ListingSummary `json:"items"`
}

type MyListingItem struct {
	ID            uint          `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Status        ListingStatus `json:"status"`
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	Mileage       int           `json:"mileage"`
	City          *string       `json:"city"`
	CreatedAt     time.Time     `json:"created_at"`
	CoverImageURL *string       `json:"cover_image_url"`
	RejectReason  *string       `json:"reject_reason"`
}

type IncomingImage struct {
	URL      string  `json:"url"`
	PublicID *string `json:"publicId"`
}

type AttachImagesRequest struct {
	Images []IncomingImage `json:"images"`
}

type FavoriteRequest struct {
	ListingID uint `json:"listingId" validate:"required"`
}

type UploadResult struct {
	URL      string  `json:"url"`
	PublicID *string `json:"publicId"`
	Storage  string  `json:"storage"`
}

type CarContext struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	EngineVolume string  `json:"engineVolume"`
	Gearbox      string  `json:"gearbox"`
	Drive        string  `json:"drive"`
	City         string  `json:"city"`
	Registration string  `json:"registration"`
}

type AIDescriptionRequest struct {
	Description string     `json:"description"`
	Car         CarContext `json:"car"`
}
