package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/internal/readtime"
	"fairway-content-backend/internal/service"
	"fairway-content-backend/pkg/logger"
)

type ContentHandler struct {
	contentService service.ContentUseCase
}

func NewContentHandler(contentService service.ContentUseCase) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) ensureService(c *gin.Context) bool {
	if h == nil || h.contentService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content service is not available"})
		return false
	}
	return true
}

// Render turns a block sequence into a document preview.
// POST /api/v1/content/render
func (h *ContentHandler) Render(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.RenderContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.contentService.RenderDocument(c.Request.Context(), models.DecodeRawBlocks(req.Blocks))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// POST /api/v1/content/sanitize
func (h *ContentHandler) Sanitize(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.SanitizeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": h.contentService.Sanitize(c.Request.Context(), *req.HTML)})
}

// POST /api/v1/content/read-time
func (h *ContentHandler) ReadTime(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}

	var req models.ReadTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var estimate readtime.Estimate
	if len(req.Blocks) > 0 {
		var err error
		estimate, err = h.contentService.EstimateBlocks(c.Request.Context(), models.DecodeRawBlocks(req.Blocks))
		if err != nil {
			h.writeError(c, err)
			return
		}
	} else {
		estimate = h.contentService.EstimateText(c.Request.Context(), req.Text)
	}

	c.JSON(http.StatusOK, gin.H{
		"label":   estimate.Label(),
		"minutes": estimate.Minutes,
		"words":   estimate.Words,
	})
}

// GET /api/v1/content/block-types
func (h *ContentHandler) BlockTypes(c *gin.Context) {
	if !h.ensureService(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"block_types":  h.contentService.BlockTypes(),
		"allowed_tags": h.contentService.AllowedTags(),
	})
}

func (h *ContentHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrTooManyBlocks) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}

	logger.FromContext(c.Request.Context()).WithError(err).Error("Content request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process content"})
}
