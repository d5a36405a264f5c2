// Package api exposes the hashing and retrieval operations over HTTP.
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/app"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/imageio"
	"github.com/Algoculus/UTH-CVIP-assignments/internal/retrieval"
)

const defaultTopK = 5

// Handler serves hash and search requests against one loaded gallery.
type Handler struct {
	service *app.Service
	gallery *retrieval.Gallery
	logger  *zap.Logger
}

// NewHandler wires a service and an optional gallery. A nil gallery
// disables /search with 503 until one is loaded.
func NewHandler(service *app.Service, gallery *retrieval.Gallery, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, gallery: gallery, logger: logger}
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.health)
	router.POST("/hash", h.hash)
	router.POST("/search", h.search)
}

func (h *Handler) health(c *gin.Context) {
	size := 0
	if h.gallery != nil {
		size = h.gallery.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"config":  h.service.Config().ID(),
		"gallery": size,
	})
}

func (h *Handler) hash(c *gin.Context) {
	requestID := uuid.NewString()
	data, ok := h.readImage(c, requestID)
	if !ok {
		return
	}

	hs, err := h.service.HashBytes(data)
	if err != nil {
		h.fail(c, requestID, "hash", err)
		return
	}

	h.logger.Info("image hashed", zap.String("request_id", requestID), zap.Int("bits", hs.BitLen()))
	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"hash":       hs.Hex(),
		"bits":       hs.BitLen(),
		"config":     hs.Config().ID(),
	})
}

func (h *Handler) search(c *gin.Context) {
	requestID := uuid.NewString()
	if h.gallery == nil || h.gallery.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"request_id": requestID, "error": "no gallery loaded"})
		return
	}

	k := defaultTopK
	if raw := c.PostForm("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": "k must be a positive integer"})
			return
		}
		k = parsed
	}

	data, ok := h.readImage(c, requestID)
	if !ok {
		return
	}
	query, err := h.service.HashBytes(data)
	if err != nil {
		h.fail(c, requestID, "search", err)
		return
	}

	matches, err := h.gallery.Search(query, k)
	if err != nil {
		h.fail(c, requestID, "search", err)
		return
	}

	results := make([]gin.H, len(matches))
	for i, m := range matches {
		results[i] = gin.H{
			"id":         m.ID,
			"distance":   m.Distance,
			"similarity": m.Similarity,
		}
	}

	h.logger.Info("gallery searched",
		zap.String("request_id", requestID),
		zap.Int("k", k),
		zap.Int("matches", len(matches)))
	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"query":      query.Hex(),
		"matches":    results,
	})
}

func (h *Handler) readImage(c *gin.Context, requestID string) ([]byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": "image file is required"})
		return nil, false
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"request_id": requestID, "error": "unable to open image"})
		return nil, false
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"request_id": requestID, "error": "failed to read image"})
		return nil, false
	}
	return data, true
}

func (h *Handler) fail(c *gin.Context, requestID, operation string, err error) {
	if errors.Is(err, imageio.ErrDecode) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"request_id": requestID, "error": "undecodable image"})
		return
	}
	h.logger.Error("request failed",
		zap.String("request_id", requestID),
		zap.String("operation", operation),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"request_id": requestID, "error": err.Error()})
}
