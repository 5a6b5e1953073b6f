package handlers

import (
	"net/http"
	"strconv"

	"auto-market/helper"
	"auto-market/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService services.CatalogService
	Helper         *helper.HTTPHelper
}

func NewCatalogHandler(catalogService services.CatalogService, httpHelper *helper.HTTPHelper) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, Helper: httpHelper}
}

func (h *CatalogHandler) Makes(c *gin.Context) {
	makes, err := h.catalogService.GetMakes()
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"makes": makes})
}

func (h *CatalogHandler) Models(c *gin.Context) {
	makeID, _ := strconv.ParseUint(c.Query("makeId"), 10, 64)

	models, err := h.catalogService.GetModels(uint(makeID))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}
