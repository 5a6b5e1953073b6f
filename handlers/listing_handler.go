package handlers

import (
	"net/http"
	"strconv"

	"auto-market/helper"
	"auto-market/middleware"
	"auto-market/models"
	"auto-market/services"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listingService services.ListingService
	Helper         *helper.HTTPHelper
}

func NewListingHandler(listingService services.ListingService, httpHelper *helper.HTTPHelper) *ListingHandler {
	return &ListingHandler{listingService: listingService, Helper: httpHelper}
}

// Search serves the public catalog. Anonymous callers get no favorite flags.
func (h *ListingHandler) Search(c *gin.Context) {
	var params models.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	var userID uint
	if user := middleware.CurrentUser(c); user != nil {
		userID = user.ID
	}

	result, err := h.listingService.Search(params, userID)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ListingHandler) GetBySlug(c *gin.Context) {
	listing, err := h.listingService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

func (h *ListingHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}
	if !h.Helper.ValidateRequest(c, req) {
		return
	}

	listing, err := h.listingService.Create(req, user.ID)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

func (h *ListingHandler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.listingService.ListOwned(user, c.Query("status"))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": items})
}

func (h *ListingHandler) GetMine(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	listing, err := h.listingService.GetOwned(id, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

func (h *ListingHandler) UpdateMine(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	if err := h.listingService.Update(id, req, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ListingHandler) DeleteMine(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.listingService.Delete(id, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ListingHandler) Publish(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.listingService.SubmitForReview(id, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ListingHandler) Unpublish(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.listingService.Unpublish(id, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ListingHandler) listingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.Helper.SendBadRequest(c, "invalid listing id")
		return 0, false
	}
	return uint(id), true
}
