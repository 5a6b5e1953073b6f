package services

import (
	"time"

	"auto-market/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the persistence contracts closely
// enough for service-level tests: scoped lookups, field patches, moderation
// logs and cover promotion all behave like the real queries.

type fakeListingRepo struct {
	listings   map[uint]*models.Listing
	logs       []models.ModerationLog
	nextID     uint
	lastSearch models.SearchParams
	searchOut  []models.Listing
	searchTot  int64
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[uint]*models.Listing{}, nextID: 1}
}

func (r *fakeListingRepo) Create(listing *models.Listing) error {
	listing.ID = r.nextID
	r.nextID++
	listing.CreatedAt = time.Now()
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *fakeListingRepo) GetScoped(id uint, userID uint, isAdmin bool) (*models.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !isAdmin && listing.OwnerID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	out := *listing
	return &out, nil
}

func (r *fakeListingRepo) GetActiveBySlug(slug string) (*models.Listing, error) {
	for _, listing := range r.listings {
		if listing.Slug == slug && listing.Status == models.StatusActive {
			out := *listing
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeListingRepo) Update(listing *models.Listing) error {
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *fakeListingRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	listing, ok := r.listings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyFields(listing, fields)
	return nil
}

func (r *fakeListingRepo) UpdateStatusWithLog(id uint, fields map[string]interface{}, entry *models.ModerationLog) error {
	listing, ok := r.listings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyFields(listing, fields)
	logged := *entry
	logged.ID = uint(len(r.logs) + 1)
	logged.CreatedAt = time.Now()
	r.logs = append(r.logs, logged)
	return nil
}

func (r *fakeListingRepo) Delete(id uint) error {
	if _, ok := r.listings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) Search(params models.SearchParams) ([]models.Listing, int64, error) {
	r.lastSearch = params
	return r.searchOut, r.searchTot, nil
}

func (r *fakeListingRepo) ListOwned(ownerID uint, isAdmin bool, status models.ListingStatus) ([]models.Listing, error) {
	var out []models.Listing
	for _, listing := range r.listings {
		if !isAdmin && listing.OwnerID != ownerID {
			continue
		}
		if status != "" && listing.Status != status {
			continue
		}
		out = append(out, *listing)
	}
	return out, nil
}

func (r *fakeListingRepo) LatestRejectReasons(listingIDs []uint) (map[uint]*string, error) {
	wanted := map[uint]bool{}
	for _, id := range listingIDs {
		wanted[id] = true
	}
	reasons := map[uint]*string{}
	for i := len(r.logs) - 1; i >= 0; i-- {
		entry := r.logs[i]
		if entry.Action != models.ActionReject || !wanted[entry.ListingID] {
			continue
		}
		if _, seen := reasons[entry.ListingID]; !seen {
			reasons[entry.ListingID] = entry.Reason
		}
	}
	return reasons, nil
}

func applyFields(listing *models.Listing, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "status":
			listing.Status = value.(models.ListingStatus)
		case "published_at":
			t := value.(time.Time)
			listing.PublishedAt = &t
		case "make_id":
			listing.MakeID = value.(uint)
		case "model_id":
			listing.ModelID = value.(uint)
		case "year":
			listing.Year = value.(int)
		case "price":
			listing.Price = value.(float64)
		case "mileage":
			listing.Mileage = value.(int)
		case "registration":
			listing.Registration = value.(*string)
		case "gearbox":
			listing.Gearbox = value.(*string)
		case "drive":
			listing.Drive = value.(*string)
		case "city":
			listing.City = value.(*string)
		case "phone":
			listing.Phone = value.(*string)
		case "description":
			listing.Description = value.(*string)
		}
	}
}

type fakeImageRepo struct {
	images map[uint][]models.ListingImage
	nextID uint
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: map[uint][]models.ListingImage{}, nextID: 1}
}

func (r *fakeImageRepo) GetByListing(listingID uint) ([]models.ListingImage, error) {
	return append([]models.ListingImage(nil), r.images[listingID]...), nil
}

func (r *fakeImageRepo) MaxSortOrder(listingID uint) (int, bool, error) {
	images := r.images[listingID]
	if len(images) == 0 {
		return 0, false, nil
	}
	max := images[0].SortOrder
	for _, image := range images[1:] {
		if image.SortOrder > max {
			max = image.SortOrder
		}
	}
	return max, true, nil
}

func (r *fakeImageRepo) HasCover(listingID uint) (bool, error) {
	for _, image := range r.images[listingID] {
		if image.IsCover {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeImageRepo) CreateBatch(images []models.ListingImage) error {
	for _, image := range images {
		image.ID = r.nextID
		r.nextID++
		image.CreatedAt = time.Now()
		r.images[image.ListingID] = append(r.images[image.ListingID], image)
	}
	return nil
}

func (r *fakeImageRepo) DeleteWithCoverPromotion(listingID, imageID uint) error {
	images := r.images[listingID]
	idx := -1
	for i, image := range images {
		if image.ID == imageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return gorm.ErrRecordNotFound
	}

	deleted := images[idx]
	survivors := append(append([]models.ListingImage(nil), images[:idx]...), images[idx+1:]...)
	if deleted.IsCover {
		if next := models.NextCover(survivors); next != nil {
			for i := range survivors {
				if survivors[i].ID == next.ID {
					survivors[i].IsCover = true
				}
			}
		}
	}
	r.images[listingID] = survivors
	return nil
}

func (r *fakeImageRepo) CoversForListings(listingIDs []uint) (map[uint]string, error) {
	covers := map[uint]string{}
	for _, id := range listingIDs {
		for _, image := range r.images[id] {
			if image.IsCover {
				covers[id] = image.URL
				break
			}
		}
	}
	return covers, nil
}

type fakeFavoriteRepo struct {
	favorites map[uint]map[uint]bool
	listings  *fakeListingRepo
}

func newFakeFavoriteRepo(listings *fakeListingRepo) *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[uint]map[uint]bool{}, listings: listings}
}

func (r *fakeFavoriteRepo) Upsert(userID, listingID uint) error {
	if r.favorites[userID] == nil {
		r.favorites[userID] = map[uint]bool{}
	}
	r.favorites[userID][listingID] = true
	return nil
}

func (r *fakeFavoriteRepo) Delete(userID, listingID uint) error {
	delete(r.favorites[userID], listingID)
	return nil
}

func (r *fakeFavoriteRepo) ListByUser(userID uint) ([]models.Favorite, error) {
	var out []models.Favorite
	for listingID := range r.favorites[userID] {
		favorite := models.Favorite{UserID: userID, ListingID: listingID}
		if r.listings != nil {
			if listing, ok := r.listings.listings[listingID]; ok {
				loaded := *listing
				favorite.Listing = &loaded
			}
		}
		out = append(out, favorite)
	}
	return out, nil
}

func (r *fakeFavoriteRepo) ForListings(userID uint, listingIDs []uint) (map[uint]bool, error) {
	out := map[uint]bool{}
	for _, id := range listingIDs {
		if r.favorites[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	makes  map[uint]models.Make
	models map[uint]models.Model
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		makes:  map[uint]models.Make{1: {ID: 1, Name: "Lada", Slug: "lada"}},
		models: map[uint]models.Model{1: {ID: 1, MakeID: 1, Name: "Vesta", Slug: "vesta"}},
	}
}

func (r *fakeCatalogRepo) GetMakes() ([]models.Make, error) {
	var out []models.Make
	for _, m := range r.makes {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetMakeByID(id uint) (*models.Make, error) {
	m, ok := r.makes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *fakeCatalogRepo) GetModelsByMake(makeID uint) ([]models.Model, error) {
	var out []models.Model
	for _, m := range r.models {
		if m.MakeID == makeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) GetModelByID(id uint) (*models.Model, error) {
	m, ok := r.models[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) GetByEmailOrPhone(email, phone string) (*models.User, error) {
	for _, user := range r.users {
		if email != "" && user.Email != nil && *user.Email == email {
			out := *user
			return &out, nil
		}
		if phone != "" && user.Phone != nil && *user.Phone == phone {
			out := *user
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	users    *fakeUserRepo
}

func newFakeSessionRepo(users *fakeUserRepo) *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}, users: users}
}

func (r *fakeSessionRepo) Create(session *models.Session) error {
	stored := *session
	r.sessions[session.Token] = &stored
	return nil
}

func (r *fakeSessionRepo) GetByToken(token string) (*models.Session, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *session
	if user, err := r.users.GetByID(session.UserID); err == nil {
		out.User = *user
	}
	return &out, nil
}

func (r *fakeSessionRepo) Delete(token string) error {
	delete(r.sessions, token)
	return nil
}
