// Package handlers implements the HTTP API and the server-rendered pages.
// Every API response uses the {success, data, error} envelope.
package handlers

import (
	"context"
	"regexp"

	"howisyourday/services"
	"howisyourday/store"
)

// Mailer is implemented by services.EmailService.
type Mailer interface {
	SendSubscriptionConfirmation(to, confirmToken string) error
	SendContactEmail(fromEmail, name, message string) error
	SendNewsletter(subject, htmlContent string, recipients []string) error
}

// Pusher is implemented by services.PushService.
type Pusher interface {
	Broadcast(title, body string, data map[string]string, tokens []string) services.PushResult
}

// Uploader is implemented by services.ImageService.
type Uploader interface {
	Upload(ctx context.Context, image string) (*services.UploadResult, error)
}

// Handler carries the stores and external clients used by the routes.
// Everything is injected so tests can swap in fakes.
type Handler struct {
	Posts       store.PostStore
	Users       store.UserStore
	Subscribers store.SubscriberStore
	PushTokens  store.PushTokenStore

	Mail   Mailer
	Push   Pusher
	Images Uploader

	JWTSecret string
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
