package handlers

import (
	"net/http"

	"auto-market/helper"
	"auto-market/models"
	"auto-market/services"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiService services.AIService
	Helper    *helper.HTTPHelper
}

func NewAIHandler(aiService services.AIService, httpHelper *helper.HTTPHelper) *AIHandler {
	return &AIHandler{aiService: aiService, Helper: httpHelper}
}

func (h *AIHandler) GenerateDescription(c *gin.Context) {
	var req models.AIDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	text, err := h.aiService.GenerateDescription(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
