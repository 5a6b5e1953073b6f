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

type AdminHandler struct {
	listingService services.ListingService
	Helper         *helper.HTTPHelper
}

func NewAdminHandler(listingService services.ListingService, httpHelper *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{listingService: listingService, Helper: httpHelper}
}

// ReviewQueue lists listings across all owners, pending review by default.
func (h *AdminHandler) ReviewQueue(c *gin.Context) {
	status := c.DefaultQuery("status", string(models.StatusPendingReview))

	items, err := h.listingService.ListOwned(middleware.CurrentUser(c), status)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": items})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	if err := h.listingService.Approve(id, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req models.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	if err := h.listingService.Reject(id, middleware.CurrentUser(c), req.Reason); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) listingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.Helper.SendBadRequest(c, "invalid listing id")
		return 0, false
	}
	return uint(id), true
}
