package services

import (
	"testing"
	"time"

	"auto-market/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listingFixture struct {
	service   ListingService
	listings  *fakeListingRepo
	images    *fakeImageRepo
	favorites *fakeFavoriteRepo
	catalog   *fakeCatalogRepo
	owner     *models.User
	stranger  *models.User
	admin     *models.User
}

func newListingFixture() *listingFixture {
	listings := newFakeListingRepo()
	images := newFakeImageRepo()
	favorites := newFakeFavoriteRepo(listings)
	catalog := newFakeCatalogRepo()

	return &listingFixture{
		service:   NewListingService(listings, images, favorites, catalog, zap.NewNop()),
		listings:  listings,
		images:    images,
		favorites: favorites,
		catalog:   catalog,
		owner:     &models.User{ID: 1, Role: models.RoleUser},
		stranger:  &models.User{ID: 2, Role: models.RoleUser},
		admin:     &models.User{ID: 9, Role: models.RoleAdmin},
	}
}

func validCreateRequest() models.CreateListingRequest {
	return models.CreateListingRequest{
		MakeID:       1,
		ModelID:      1,
		Year:         2018,
		Price:        750000,
		Mileage:      64000,
		EngineVolume: "1,6",
		Registration: "RF",
		Gearbox:      "MANUAL",
		Drive:        "FWD",
		City:         "Казань",
	}
}

func TestCreateListing(t *testing.T) {
	f := newListingFixture()

	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDraft, listing.Status)
	assert.Equal(t, "Lada Vesta 2018", listing.Title)
	assert.Equal(t, models.DealTypeSale, listing.DealType)
	assert.Equal(t, "RUB", listing.Currency)
	assert.Nil(t, listing.PublishedAt)
	assert.Contains(t, listing.Slug, "lada-vesta-2018-")

	// Comma decimal separators are normalized on the way in.
	require.NotNil(t, listing.EngineVolume)
	assert.Equal(t, "1.6", *listing.EngineVolume)

	// Blank optional strings are stored as NULL, not "".
	assert.Nil(t, listing.Phone)
	assert.Nil(t, listing.Description)
	require.NotNil(t, listing.City)
	assert.Equal(t, "Казань", *listing.City)
}

func TestCreateListingValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CreateListingRequest)
	}{
		{"missing make", func(r *models.CreateListingRequest) { r.MakeID = 0 }},
		{"unknown make", func(r *models.CreateListingRequest) { r.MakeID = 42 }},
		{"unknown model", func(r *models.CreateListingRequest) { r.ModelID = 42 }},
		{"year too old", func(r *models.CreateListingRequest) { r.Year = 1899 }},
		{"year too new", func(r *models.CreateListingRequest) { r.Year = 2101 }},
		{"zero price", func(r *models.CreateListingRequest) { r.Price = 0 }},
		{"negative price", func(r *models.CreateListingRequest) { r.Price = -5 }},
		{"negative mileage", func(r *models.CreateListingRequest) { r.Mileage = -1 }},
		{"engine volume three decimals", func(r *models.CreateListingRequest) { r.EngineVolume = "2.055" }},
		{"engine volume garbage", func(r *models.CreateListingRequest) { r.EngineVolume = "two liters" }},
		{"unknown registration", func(r *models.CreateListingRequest) { r.Registration = "EU" }},
		{"missing gearbox", func(r *models.CreateListingRequest) { r.Gearbox = "" }},
		{"unknown gearbox", func(r *models.CreateListingRequest) { r.Gearbox = "TIPTRONIC" }},
		{"missing drive", func(r *models.CreateListingRequest) { r.Drive = "" }},
		{"unknown drive", func(r *models.CreateListingRequest) { r.Drive = "6X6" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newListingFixture()
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := f.service.Create(req, f.owner.ID)
			var verr models.ErrorValidation
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateListingAcceptsBoundaries(t *testing.T) {
	f := newListingFixture()
	req := validCreateRequest()
	req.Year = 1900
	req.Price = 0.01
	req.Mileage = 0
	req.EngineVolume = ""
	req.Registration = ""

	listing, err := f.service.Create(req, f.owner.ID)
	require.NoError(t, err)
	assert.Nil(t, listing.EngineVolume)
	assert.Nil(t, listing.Registration)
}

func TestModerationFlow(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.SubmitForReview(listing.ID, f.owner))
	assert.Equal(t, models.StatusPendingReview, f.listings.listings[listing.ID].Status)

	require.NoError(t, f.service.Reject(listing.ID, f.admin, "blurry photos"))
	assert.Equal(t, models.StatusRejected, f.listings.listings[listing.ID].Status)
	assert.Nil(t, f.listings.listings[listing.ID].PublishedAt)

	// The owner sees the latest rejection reason alongside the listing.
	items, err := f.service.ListOwned(f.owner, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].RejectReason)
	assert.Equal(t, "blurry photos", *items[0].RejectReason)

	// Rejected listings can be resubmitted directly.
	require.NoError(t, f.service.SubmitForReview(listing.ID, f.owner))
	require.NoError(t, f.service.Approve(listing.ID, f.admin))

	stored := f.listings.listings[listing.ID]
	assert.Equal(t, models.StatusActive, stored.Status)
	require.NotNil(t, stored.PublishedAt)

	// One row per decision, in order.
	require.Len(t, f.listings.logs, 2)
	assert.Equal(t, models.ActionReject, f.listings.logs[0].Action)
	assert.Equal(t, models.ActionApprove, f.listings.logs[1].Action)
	assert.Equal(t, f.admin.ID, f.listings.logs[1].AdminID)
}

func TestSubmitForReviewGuards(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	f.listings.listings[listing.ID].Status = models.StatusActive

	var serr models.ErrorInvalidState
	assert.ErrorAs(t, f.service.SubmitForReview(listing.ID, f.owner), &serr)
}

func TestAdminPublishSkipsReview(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.admin.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.SubmitForReview(listing.ID, f.admin))

	stored := f.listings.listings[listing.ID]
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.NotNil(t, stored.PublishedAt)
	assert.Empty(t, f.listings.logs)
}

func TestApproveGuards(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	var ferr models.ErrorForbidden
	assert.ErrorAs(t, f.service.Approve(listing.ID, f.owner), &ferr)

	// Still a draft, so moderation is out of order.
	var serr models.ErrorInvalidState
	assert.ErrorAs(t, f.service.Approve(listing.ID, f.admin), &serr)
	assert.ErrorAs(t, f.service.Reject(listing.ID, f.admin, "nope"), &serr)
}

func TestApproveKeepsOriginalPublishTime(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	firstPublish := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stored := f.listings.listings[listing.ID]
	stored.Status = models.StatusPendingReview
	stored.PublishedAt = &firstPublish

	require.NoError(t, f.service.Approve(listing.ID, f.admin))
	assert.Equal(t, firstPublish, *f.listings.listings[listing.ID].PublishedAt)
}

func TestUpdateMergeSemantics(t *testing.T) {
	f := newListingFixture()
	req := validCreateRequest()
	req.Phone = "+7 900 000-00-00"
	req.Description = "Отличное состояние"
	listing, err := f.service.Create(req, f.owner.ID)
	require.NoError(t, err)

	newPrice := 800000.0
	err = f.service.Update(listing.ID, models.UpdateListingRequest{
		Price: &newPrice,
		City:  "Москва",
	}, f.owner)
	require.NoError(t, err)

	stored := f.listings.listings[listing.ID]
	assert.Equal(t, 800000.0, stored.Price)
	assert.Equal(t, 2018, stored.Year) // absent pointer field untouched
	require.NotNil(t, stored.City)
	assert.Equal(t, "Москва", *stored.City)

	// Phone and description were omitted from the patch, so they are cleared.
	assert.Nil(t, stored.Phone)
	assert.Nil(t, stored.Description)
}

func TestUpdateValidation(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	badYear := 1850
	badPrice := -1.0
	badGearbox := "TIPTRONIC"

	var verr models.ErrorValidation
	assert.ErrorAs(t, f.service.Update(listing.ID, models.UpdateListingRequest{Year: &badYear}, f.owner), &verr)
	assert.ErrorAs(t, f.service.Update(listing.ID, models.UpdateListingRequest{Price: &badPrice}, f.owner), &verr)
	assert.ErrorAs(t, f.service.Update(listing.ID, models.UpdateListingRequest{Gearbox: &badGearbox}, f.owner), &verr)
}

func TestUpdateRequiresDraftForOwner(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	f.listings.listings[listing.ID].Status = models.StatusActive

	var serr models.ErrorInvalidState
	assert.ErrorAs(t, f.service.Update(listing.ID, models.UpdateListingRequest{}, f.owner), &serr)

	// Admins may edit in any status.
	assert.NoError(t, f.service.Update(listing.ID, models.UpdateListingRequest{}, f.admin))
}

func TestForeignListingLooksMissing(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	var nerr models.ErrorNotFound
	_, err = f.service.GetOwned(listing.ID, f.stranger)
	assert.ErrorAs(t, err, &nerr)
	assert.ErrorAs(t, f.service.Update(listing.ID, models.UpdateListingRequest{}, f.stranger), &nerr)
	assert.ErrorAs(t, f.service.Delete(listing.ID, f.stranger), &nerr)
	assert.ErrorAs(t, f.service.Unpublish(listing.ID, f.stranger), &nerr)
}

func TestDeleteRequiresDraftForOwner(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	f.listings.listings[listing.ID].Status = models.StatusPendingReview

	var serr models.ErrorInvalidState
	assert.ErrorAs(t, f.service.Delete(listing.ID, f.owner), &serr)

	require.NoError(t, f.service.Delete(listing.ID, f.admin))
	assert.NotContains(t, f.listings.listings, listing.ID)
}

func TestUnpublishFromAnyStatus(t *testing.T) {
	statuses := []models.ListingStatus{
		models.StatusDraft,
		models.StatusPendingReview,
		models.StatusActive,
		models.StatusRejected,
		models.StatusArchived,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			f := newListingFixture()
			listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
			require.NoError(t, err)
			f.listings.listings[listing.ID].Status = status

			require.NoError(t, f.service.Unpublish(listing.ID, f.owner))
			assert.Equal(t, models.StatusArchived, f.listings.listings[listing.ID].Status)
		})
	}
}

func TestSearchDefaultsAndClamps(t *testing.T) {
	f := newListingFixture()

	_, err := f.service.Search(models.SearchParams{}, 0)
	require.NoError(t, err)
	assert.Equal(t, models.DealTypeSale, f.listings.lastSearch.DealType)
	assert.Equal(t, 1, f.listings.lastSearch.Page)
	assert.Equal(t, 20, f.listings.lastSearch.PageSize)

	_, err = f.service.Search(models.SearchParams{Page: -3, PageSize: 500, Registration: "EU"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.listings.lastSearch.Page)
	assert.Equal(t, 50, f.listings.lastSearch.PageSize)
	assert.Empty(t, f.listings.lastSearch.Registration, "unknown registration filter is dropped, not rejected")
}

func TestSearchDecoratesResults(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	require.NoError(t, f.images.CreateBatch([]models.ListingImage{
		{ListingID: listing.ID, URL: "https://img.example/cover.jpg", IsCover: true},
	}))
	require.NoError(t, f.favorites.Upsert(f.stranger.ID, listing.ID))

	f.listings.searchOut = []models.Listing{*f.listings.listings[listing.ID]}
	f.listings.searchTot = 1

	result, err := f.service.Search(models.SearchParams{}, f.stranger.ID)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
	require.NotNil(t, result.Items[0].CoverImageURL)
	assert.Equal(t, "https://img.example/cover.jpg", *result.Items[0].CoverImageURL)
	assert.True(t, result.Items[0].IsFavorite)

	// Anonymous callers never see favorite flags.
	result, err = f.service.Search(models.SearchParams{}, 0)
	require.NoError(t, err)
	assert.False(t, result.Items[0].IsFavorite)
}

func TestGetPublicBySlug(t *testing.T) {
	f := newListingFixture()
	listing, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)

	// Drafts are invisible publicly even with the right slug.
	var nerr models.ErrorNotFound
	_, err = f.service.GetPublicBySlug(listing.Slug)
	assert.ErrorAs(t, err, &nerr)

	f.listings.listings[listing.ID].Status = models.StatusActive
	found, err := f.service.GetPublicBySlug(listing.Slug)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, found.ID)
}

func TestListOwnedStatusFilter(t *testing.T) {
	f := newListingFixture()
	first, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)
	second, err := f.service.Create(validCreateRequest(), f.owner.ID)
	require.NoError(t, err)
	f.listings.listings[second.ID].Status = models.StatusActive

	items, err := f.service.ListOwned(f.owner, string(models.StatusDraft))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	// An unknown status value falls back to no filter.
	items, err = f.service.ListOwned(f.owner, "BOGUS")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
