package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"howisyourday/auth"
	"howisyourday/models"
	"howisyourday/store"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	IsAdmin     bool    `json:"is_admin"`
}

func summarize(u *models.User) userSummary {
	return userSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, IsAdmin: u.IsAdmin}
}

// Login serves POST /api/auth/login. Unknown email and wrong password answer
// identically; unverified accounts are rejected with 403 regardless of the
// password being correct.
func (h *Handler) Login(c *gin.Context) {
	var req loginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !emailRegex.MatchString(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	user, err := h.Users.GetByEmail(req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Printf("login lookup: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !user.IsVerified {
		respondError(c, http.StatusForbidden, "Account not verified")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		log.Printf("sign token: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"token": token,
		"user":  summarize(user),
	})
}

type registerInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name"`
}

// Register serves POST /api/auth/register. Admin-gated by middleware; every
// account it creates is an admin and pre-verified.
func (h *Handler) Register(c *gin.Context) {
	var req registerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !emailRegex.MatchString(req.Email) {
		respondError(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.Users.Create(req.Email, string(hash), req.DisplayName, true, true)
	if errors.Is(err, store.ErrDuplicate) {
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		log.Printf("create user: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    summarize(user),
	})
}

// Logout serves POST /api/auth/logout. Tokens are stateless, so this is an
// acknowledgement only; an issued token stays valid until it expires.
func (h *Handler) Logout(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}
