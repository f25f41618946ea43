package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"howisyourday/models"
	"howisyourday/store"
)

type subscribeInput struct {
	Email string `json:"email"`
}

// Subscribe serves POST /api/subscribe. A new address gets a fresh token and
// a confirmation email; an unconfirmed address gets its existing token resent
// without creating a second row. Email delivery failure on a fresh
// subscription is logged and swallowed so the write still reports success.
func (h *Handler) Subscribe(c *gin.Context) {
	var req subscribeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !emailRegex.MatchString(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	existing, err := h.Subscribers.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("subscriber lookup: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	if existing != nil {
		h.resendConfirmation(c, existing)
		return
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	confirmToken := hex.EncodeToString(tokenBytes)

	sub, err := h.Subscribers.Create(req.Email, confirmToken)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost a race with a concurrent subscribe; fall back to resend.
		existing, err := h.Subscribers.GetByEmail(req.Email)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to subscribe")
			return
		}
		h.resendConfirmation(c, existing)
		return
	}
	if err != nil {
		log.Printf("create subscriber: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	if err := h.Mail.SendSubscriptionConfirmation(sub.Email, confirmToken); err != nil {
		// Best effort: the subscription itself succeeded.
		log.Printf("confirmation email to %s: %v", sub.Email, err)
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Subscription successful! Please check your email to confirm.",
	})
}

// resendConfirmation handles a repeat subscribe: confirmed addresses are
// rejected, unconfirmed ones get the same token again (tokens are not
// rotated on resend).
func (h *Handler) resendConfirmation(c *gin.Context, sub *models.Subscriber) {
	if sub.Confirmed {
		respondError(c, http.StatusBadRequest, "Email already subscribed")
		return
	}

	token := ""
	if sub.ConfirmToken != nil {
		token = *sub.ConfirmToken
	}
	if err := h.Mail.SendSubscriptionConfirmation(sub.Email, token); err != nil {
		log.Printf("resend confirmation to %s: %v", sub.Email, err)
		respondError(c, http.StatusInternalServerError, "Failed to send confirmation email")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Confirmation email resent. Please check your inbox.",
	})
}

// ConfirmSubscription serves GET /api/subscribe/confirm?token=...
func (h *Handler) ConfirmSubscription(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respondError(c, http.StatusBadRequest, "Missing confirmation token")
		return
	}

	sub, err := h.Subscribers.GetByToken(token)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Invalid confirmation token")
		return
	}
	if err != nil {
		log.Printf("token lookup: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to confirm subscription")
		return
	}

	if sub.Confirmed {
		respondOK(c, http.StatusOK, gin.H{"message": "Email already confirmed"})
		return
	}

	if err := h.Subscribers.Confirm(sub.ID); err != nil {
		log.Printf("confirm subscriber %d: %v", sub.ID, err)
		respondError(c, http.StatusInternalServerError, "Failed to confirm subscription")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "Email confirmed successfully! Thank you for subscribing.",
	})
}

// AdminListSubscribers serves GET /api/admin/subscribers, optionally filtered
// by ?confirmed=true|false.
func (h *Handler) AdminListSubscribers(c *gin.Context) {
	var confirmed *bool
	switch c.Query("confirmed") {
	case "true":
		v := true
		confirmed = &v
	case "false":
		v := false
		confirmed = &v
	}

	subs, err := h.Subscribers.List(confirmed)
	if err != nil {
		log.Printf("list subscribers: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch subscribers")
		return
	}

	respondOK(c, http.StatusOK, subs)
}
