package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact serves POST /api/contact: forwards a visitor's message to the site
// owner by email.
func (h *Handler) Contact(c *gin.Context) {
	var req contactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Message == "" {
		respondError(c, http.StatusBadRequest, "Name and message are required")
		return
	}
	if !emailRegex.MatchString(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	if err := h.Mail.SendContactEmail(req.Email, req.Name, req.Message); err != nil {
		log.Printf("contact email from %s: %v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Message sent successfully"})
}
