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

type FavoriteHandler struct {
	favoriteService services.FavoriteService
	Helper          *helper.HTTPHelper
}

func NewFavoriteHandler(favoriteService services.FavoriteService, httpHelper *helper.HTTPHelper) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, Helper: httpHelper}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.favoriteService.List(user.ID)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": items})
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}
	if !h.Helper.ValidateRequest(c, req) {
		return
	}

	if err := h.favoriteService.Add(user.ID, req.ListingID); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	user := middleware.CurrentUser(c)

	listingID, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil || listingID == 0 {
		h.Helper.SendBadRequest(c, "invalid listing id")
		return
	}

	if err := h.favoriteService.Remove(user.ID, uint(listingID)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
