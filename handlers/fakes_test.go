package handlers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"howisyourday/models"
	"howisyourday/services"
	"howisyourday/store"
)

// In-memory stand-ins for the store interfaces so handler tests run without
// a database.

type fakePostStore struct {
	posts  []*models.Post
	nextID int64
}

func (f *fakePostStore) slugTaken(slug string, excludeID int64) bool {
	for _, p := range f.posts {
		if p.Slug == slug && p.ID != excludeID {
			return true
		}
	}
	return false
}

func (f *fakePostStore) List(filter store.PostFilter) ([]models.Post, int, error) {
	matched := []models.Post{}
	for _, p := range f.posts {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Tag != "" {
			found := false
			for _, t := range p.Tags {
				if t == filter.Tag {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Title), s) &&
				!strings.Contains(strings.ToLower(p.Content), s) {
				continue
			}
		}
		matched = append(matched, *p)
	}

	total := len(matched)
	if filter.Offset >= total {
		return []models.Post{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (f *fakePostStore) GetPublishedBySlug(slug string) (*models.Post, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.Status == models.StatusPublished {
			copied := *p
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePostStore) GetByID(id int64) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakePostStore) Create(p *models.Post) error {
	base := p.Slug
	for attempt := 0; ; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		if !f.slugTaken(candidate, 0) {
			p.Slug = candidate
			break
		}
	}

	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	copied := *p
	f.posts = append(f.posts, &copied)
	return nil
}

func (f *fakePostStore) Update(id int64, u store.PostUpdate) (*models.Post, error) {
	for _, p := range f.posts {
		if p.ID != id {
			continue
		}
		if u.Title != nil {
			p.Title = *u.Title
		}
		if u.Excerpt != nil {
			p.Excerpt = u.Excerpt
		}
		if u.Content != nil {
			p.Content = *u.Content
		}
		if u.FeaturedImage != nil {
			p.FeaturedImage = u.FeaturedImage
		}
		if u.Tags != nil {
			p.Tags = *u.Tags
		}
		if u.Status != nil {
			p.Status = *u.Status
		}
		if u.PublishedAt != nil {
			p.PublishedAt = u.PublishedAt
		}
		if u.Slug != nil {
			candidate := *u.Slug
			for attempt := 1; f.slugTaken(candidate, id); attempt++ {
				candidate = fmt.Sprintf("%s-%d", *u.Slug, attempt)
			}
			p.Slug = candidate
		}
		p.UpdatedAt = time.Now()
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakePostStore) Delete(id int64) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakePostStore) TagCounts() ([]models.TagCount, error) {
	counts := map[string]int{}
	for _, p := range f.posts {
		if p.Status != models.StatusPublished {
			continue
		}
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	result := []models.TagCount{}
	for tag, count := range counts {
		result = append(result, models.TagCount{Tag: tag, Count: count})
	}
	return result, nil
}

type fakeUserStore struct {
	users  []*models.User
	nextID int64
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) Create(email, passwordHash string, displayName *string, isAdmin, isVerified bool) (*models.User, error) {
	if _, err := f.GetByEmail(email); err == nil {
		return nil, store.ErrDuplicate
	}
	f.nextID++
	u := &models.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		IsAdmin:      isAdmin,
		IsVerified:   isVerified,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	copied := *u
	return &copied, nil
}

type fakeSubscriberStore struct {
	subs   []*models.Subscriber
	nextID int64
}

func (f *fakeSubscriberStore) GetByEmail(email string) (*models.Subscriber, error) {
	for _, s := range f.subs {
		if s.Email == email {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSubscriberStore) GetByToken(token string) (*models.Subscriber, error) {
	for _, s := range f.subs {
		if s.ConfirmToken != nil && *s.ConfirmToken == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeSubscriberStore) Create(email, confirmToken string) (*models.Subscriber, error) {
	if _, err := f.GetByEmail(email); err == nil {
		return nil, store.ErrDuplicate
	}
	f.nextID++
	s := &models.Subscriber{
		ID:           f.nextID,
		Email:        email,
		ConfirmToken: &confirmToken,
		SubscribedAt: time.Now(),
	}
	f.subs = append(f.subs, s)
	copied := *s
	return &copied, nil
}

func (f *fakeSubscriberStore) Confirm(id int64) error {
	for _, s := range f.subs {
		if s.ID == id {
			s.Confirmed = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeSubscriberStore) List(confirmed *bool) ([]models.Subscriber, error) {
	result := []models.Subscriber{}
	for _, s := range f.subs {
		if confirmed != nil && s.Confirmed != *confirmed {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (f *fakeSubscriberStore) ListConfirmedEmails() ([]string, error) {
	emails := []string{}
	for _, s := range f.subs {
		if s.Confirmed {
			emails = append(emails, s.Email)
		}
	}
	return emails, nil
}

type fakePushTokenStore struct {
	tokens []models.PushToken
	nextID int64
}

func (f *fakePushTokenStore) Register(token, platform string) (bool, error) {
	for _, t := range f.tokens {
		if t.Token == token {
			return false, nil
		}
	}
	f.nextID++
	f.tokens = append(f.tokens, models.PushToken{
		ID: f.nextID, Token: token, Platform: platform, CreatedAt: time.Now(),
	})
	return true, nil
}

func (f *fakePushTokenStore) ListTokens() ([]string, error) {
	tokens := []string{}
	for _, t := range f.tokens {
		tokens = append(tokens, t.Token)
	}
	return tokens, nil
}

type sentMail struct {
	to    string
	token string
}

type fakeMailer struct {
	confirmations []sentMail
	contacts      int
	newsletters   [][]string
	failNext      bool
}

func (f *fakeMailer) SendSubscriptionConfirmation(to, confirmToken string) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("smtp down")
	}
	f.confirmations = append(f.confirmations, sentMail{to: to, token: confirmToken})
	return nil
}

func (f *fakeMailer) SendContactEmail(fromEmail, name, message string) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("smtp down")
	}
	f.contacts++
	return nil
}

func (f *fakeMailer) SendNewsletter(subject, htmlContent string, recipients []string) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("smtp down")
	}
	f.newsletters = append(f.newsletters, recipients)
	return nil
}

type fakePusher struct {
	calls  int
	tokens []string
}

func (f *fakePusher) Broadcast(title, body string, data map[string]string, tokens []string) services.PushResult {
	f.calls++
	f.tokens = tokens
	return services.PushResult{Sent: len(tokens), Tickets: len(tokens)}
}
