package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type uploadInput struct {
	Image string `json:"image"`
}

// Upload serves POST /api/admin/upload: base64 image in, hosted URL out.
func (h *Handler) Upload(c *gin.Context) {
	var req uploadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Image == "" {
		respondError(c, http.StatusBadRequest, "Image data is required")
		return
	}

	if h.Images == nil {
		log.Printf("upload rejected: image host not configured")
		respondError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	result, err := h.Images.Upload(c.Request.Context(), req.Image)
	if err != nil {
		log.Printf("image upload: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	respondOK(c, http.StatusOK, result)
}
