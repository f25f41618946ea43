package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/russross/blackfriday/v2"

	"howisyourday/models"
	"howisyourday/store"
)

const homePageSize = 10

// Home renders the public landing page: published posts, newest first, with
// tag chips and pagination links.
func (h *Handler) Home(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	posts, total, err := h.Posts.List(store.PostFilter{
		Status: models.StatusPublished,
		Tag:    c.Query("tag"),
		Limit:  homePageSize,
		Offset: (page - 1) * homePageSize,
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "home.html", gin.H{
			"Title": "How Is Your Day",
			"Error": "Something went wrong",
		})
		return
	}

	// Tag chips are best effort; the page still renders without them.
	tags, _ := h.Posts.TagCounts()

	totalPages := (total + homePageSize - 1) / homePageSize

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":      "How Is Your Day",
		"Posts":      posts,
		"Tags":       tags,
		"ActiveTag":  c.Query("tag"),
		"Page":       page,
		"TotalPages": totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
	})
}

// ShowPost renders a single published post with its markdown converted to HTML.
func (h *Handler) ShowPost(c *gin.Context) {
	post, err := h.Posts.GetPublishedBySlug(c.Param("slug"))
	if errors.Is(err, sql.ErrNoRows) {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	rendered := blackfriday.Run([]byte(post.Content))

	c.HTML(http.StatusOK, "post.html", gin.H{
		"Title":   post.Title,
		"Post":    post,
		"Content": template.HTML(rendered),
	})
}

// ShowTags renders the tag index with per-tag post counts.
func (h *Handler) ShowTags(c *gin.Context) {
	tags, err := h.Posts.TagCounts()
	if err != nil {
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "tags.html", gin.H{
		"Title": "Tags",
		"Tags":  tags,
	})
}
