package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"auto-market/helper"
	"auto-market/middleware"
	"auto-market/models"
	"auto-market/services"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

type ImageHandler struct {
	imageService  services.ImageService
	uploadService services.UploadService
	Helper        *helper.HTTPHelper
}

func NewImageHandler(imageService services.ImageService, uploadService services.UploadService, httpHelper *helper.HTTPHelper) *ImageHandler {
	return &ImageHandler{imageService: imageService, uploadService: uploadService, Helper: httpHelper}
}

func (h *ImageHandler) Attach(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req models.AttachImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error())
		return
	}

	if err := h.imageService.AttachImages(id, req.Images, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *ImageHandler) Delete(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}
	imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 64)
	if err != nil || imageID == 0 {
		h.Helper.SendBadRequest(c, "invalid image id")
		return
	}

	if err := h.imageService.DeleteImage(id, uint(imageID), middleware.CurrentUser(c)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Helper.SendBadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.Helper.SendBadRequest(c, "only image uploads are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.SendDomainError(c, models.ErrorInternalServer{Message: "failed to read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		h.Helper.SendDomainError(c, models.ErrorInternalServer{Message: "failed to read upload"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds 10MB limit"})
		return
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ImageHandler) listingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.Helper.SendBadRequest(c, "invalid listing id")
		return 0, false
	}
	return uint(id), true
}
