// Package store provides database access for the blog's entities. Interfaces
// are implemented against Postgres; handlers depend only on the interfaces so
// they can be tested without a database.
package store

import (
	"errors"
	"time"

	"howisyourday/models"
)

// ErrDuplicate is returned when an insert hits a unique constraint
// (subscriber email, push token).
var ErrDuplicate = errors.New("store: duplicate row")

// PostFilter narrows List results. Zero values mean "no filter".
type PostFilter struct {
	Status string // "draft" or "published"
	Tag    string // tag list containment, not substring
	Search string // case-insensitive substring on title or content
	Limit  int
	Offset int
}

// PostUpdate carries a partial update; nil fields are left untouched.
type PostUpdate struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	Tags          *[]string
	Status        *string
	PublishedAt   *time.Time
}

type PostStore interface {
	// List returns a page of posts plus the exact total matching the filter.
	List(f PostFilter) ([]models.Post, int, error)
	GetPublishedBySlug(slug string) (*models.Post, error)
	GetByID(id int64) (*models.Post, error)
	// Create inserts the post. p.Slug is treated as a base: on a slug
	// collision the insert is retried with a counter suffix.
	Create(p *models.Post) error
	Update(id int64, u PostUpdate) (*models.Post, error)
	Delete(id int64) error
	TagCounts() ([]models.TagCount, error)
}

type UserStore interface {
	GetByEmail(email string) (*models.User, error)
	Create(email, passwordHash string, displayName *string, isAdmin, isVerified bool) (*models.User, error)
}

type SubscriberStore interface {
	GetByEmail(email string) (*models.Subscriber, error)
	GetByToken(token string) (*models.Subscriber, error)
	// Create returns ErrDuplicate if the email is already subscribed.
	Create(email, confirmToken string) (*models.Subscriber, error)
	Confirm(id int64) error
	List(confirmed *bool) ([]models.Subscriber, error)
	ListConfirmedEmails() ([]string, error)
}

type PushTokenStore interface {
	// Register inserts the token, reporting false if it was already known.
	Register(token, platform string) (bool, error)
	ListTokens() ([]string, error)
}
