package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"howisyourday/models"
	"howisyourday/slug"
	"howisyourday/store"
)

// AdminListPosts serves GET /api/admin/posts: every post regardless of
// status, newest created first.
func (h *Handler) AdminListPosts(c *gin.Context) {
	page, limit := parsePagination(c)

	status := c.Query("status")
	if status != models.StatusDraft && status != models.StatusPublished {
		status = ""
	}

	posts, total, err := h.Posts.List(store.PostFilter{
		Status: status,
		Search: c.Query("search"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		log.Printf("admin list posts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	respondOK(c, http.StatusOK, pagedResult{
		Data:       posts,
		Pagination: newPagination(page, limit, total),
	})
}

type postInput struct {
	Title         string     `json:"title"`
	Slug          *string    `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"published_at"`
}

// CreatePost serves POST /api/admin/posts. The slug comes from the provided
// slug or the title; uniqueness is enforced by the store against the slug
// index, retrying with a counter suffix on collision.
func (h *Handler) CreatePost(c *gin.Context) {
	var req postInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" || req.Content == "" {
		respondError(c, http.StatusBadRequest, "Title and content are required")
		return
	}
	if req.Status != models.StatusDraft && req.Status != models.StatusPublished {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	base := req.Title
	if req.Slug != nil && *req.Slug != "" {
		base = *req.Slug
	}

	post := models.Post{
		Title:         req.Title,
		Slug:          slug.Slugify(base),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Status:        req.Status,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		PublishedAt:   req.PublishedAt,
	}

	if userID, ok := c.Get("userID"); ok {
		if id, ok := userID.(int64); ok {
			post.AuthorID = &id
		}
	}

	// First publish without an explicit timestamp gets the current time.
	if post.Status == models.StatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := h.Posts.Create(&post); err != nil {
		log.Printf("create post: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondOK(c, http.StatusCreated, post)
}

type postUpdateInput struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       *string    `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	Tags          *[]string  `json:"tags"`
	Status        *string    `json:"status"`
	PublishedAt   *time.Time `json:"published_at"`
}

// UpdatePost serves PUT /api/admin/posts/:id. Only fields present in the body
// are touched. published_at is set automatically on the first transition to
// published and is never overwritten by later saves.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req postUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	existing, err := h.Posts.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("fetch post %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	upd := store.PostUpdate{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		PublishedAt:   req.PublishedAt,
	}

	if req.Status != nil {
		if *req.Status != models.StatusDraft && *req.Status != models.StatusPublished {
			respondError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		upd.Status = req.Status

		if *req.Status == models.StatusPublished && existing.PublishedAt == nil && req.PublishedAt == nil {
			now := time.Now()
			upd.PublishedAt = &now
		}
	}

	if req.Slug != nil {
		s := slug.Slugify(*req.Slug)
		upd.Slug = &s
	}

	post, err := h.Posts.Update(id, upd)
	if err != nil {
		log.Printf("update post %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update post")
		return
	}

	respondOK(c, http.StatusOK, post)
}

// DeletePost serves DELETE /api/admin/posts/:id.
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	err = h.Posts.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("delete post %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
