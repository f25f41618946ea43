package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"howisyourday/models"
)

type registerTokenInput struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// RegisterPushToken serves POST /api/push/register. Registration is
// idempotent: a token that is already stored answers 200 instead of a
// duplicate row.
func (h *Handler) RegisterPushToken(c *gin.Context) {
	var req registerTokenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Token == "" || req.Platform == "" {
		respondError(c, http.StatusBadRequest, "Token and platform are required")
		return
	}
	if req.Platform != models.PlatformIOS && req.Platform != models.PlatformAndroid {
		respondError(c, http.StatusBadRequest, "Invalid platform")
		return
	}

	created, err := h.PushTokens.Register(req.Token, req.Platform)
	if err != nil {
		log.Printf("register push token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register token")
		return
	}

	if !created {
		respondOK(c, http.StatusOK, gin.H{"message": "Token already registered"})
		return
	}
	respondOK(c, http.StatusCreated, gin.H{"message": "Token registered successfully"})
}

type notifyInput struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// Notify serves POST /api/admin/notify: broadcast a push message to every
// registered device. The response reports attempted messages and issued
// tickets, not per-device delivery.
func (h *Handler) Notify(c *gin.Context) {
	var req notifyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" || req.Body == "" {
		respondError(c, http.StatusBadRequest, "Title and body are required")
		return
	}

	tokens, err := h.PushTokens.ListTokens()
	if err != nil {
		log.Printf("list push tokens: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch push tokens")
		return
	}

	if len(tokens) == 0 {
		respondOK(c, http.StatusOK, gin.H{"message": "No push tokens registered", "sent": 0})
		return
	}

	result := h.Push.Broadcast(req.Title, req.Body, req.Data, tokens)
	if result.Sent == 0 {
		respondOK(c, http.StatusOK, gin.H{"message": "No valid push tokens", "sent": 0})
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Notifications sent",
		"sent":    result.Sent,
		"tickets": result.Tickets,
	})
}
