package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"howisyourday/models"
	"howisyourday/store"
)

// ListPosts serves GET /api/posts: published posts only, newest first,
// optionally filtered by tag or search text.
func (h *Handler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)

	posts, total, err := h.Posts.List(store.PostFilter{
		Status: models.StatusPublished,
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		log.Printf("list posts: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	respondOK(c, http.StatusOK, pagedResult{
		Data:       posts,
		Pagination: newPagination(page, limit, total),
	})
}

// GetPost serves GET /api/posts/:slug for a single published post.
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.Posts.GetPublishedBySlug(c.Param("slug"))
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		log.Printf("get post: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	respondOK(c, http.StatusOK, post)
}

// ListTags serves GET /api/tags: every tag on a published post with its count.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.Posts.TagCounts()
	if err != nil {
		log.Printf("list tags: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	respondOK(c, http.StatusOK, tags)
}
