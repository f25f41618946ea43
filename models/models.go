package models

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

type Post struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt"`
	Content       string     `json:"content"`
	AuthorID      *int64     `json:"author_id"`
	Status        string     `json:"status"`
	FeaturedImage *string    `json:"featured_image"`
	Tags          []string   `json:"tags"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Filled by joined queries for detail views.
	AuthorName *string `json:"author_name,omitempty"`
}

type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Confirmed    bool      `json:"confirmed"`
	ConfirmToken *string   `json:"-"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type PushToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is modeled and migrated but not yet exposed by any route.
type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorName  *string   `json:"author_name"`
	AuthorEmail *string   `json:"author_email"`
	Body        string    `json:"body"`
	IsModerated bool      `json:"is_moderated"`
	CreatedAt   time.Time `json:"created_at"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
