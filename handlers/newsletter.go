package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type newsletterInput struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// SendNewsletter serves POST /api/admin/newsletter: broadcast an HTML email
// to every confirmed subscriber.
func (h *Handler) SendNewsletter(c *gin.Context) {
	var req newsletterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Subject == "" || req.Content == "" {
		respondError(c, http.StatusBadRequest, "Subject and content are required")
		return
	}

	emails, err := h.Subscribers.ListConfirmedEmails()
	if err != nil {
		log.Printf("list confirmed subscribers: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch subscribers")
		return
	}

	if len(emails) == 0 {
		respondOK(c, http.StatusOK, gin.H{"message": "No confirmed subscribers", "sent": 0})
		return
	}

	if err := h.Mail.SendNewsletter(req.Subject, req.Content, emails); err != nil {
		log.Printf("newsletter send: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to send newsletter")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Newsletter sent", "sent": len(emails)})
}
