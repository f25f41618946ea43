package services

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const siteName = "How Is Your Day"

// EmailService sends transactional mail through SendGrid. Every send is a
// single attempt; callers decide whether a failure is fatal.
type EmailService struct {
	apiKey    string
	fromEmail string
	siteURL   string
}

func NewEmailService(apiKey, fromEmail, siteURL string) *EmailService {
	return &EmailService{apiKey: apiKey, fromEmail: fromEmail, siteURL: siteURL}
}

func (e *EmailService) SendSubscriptionConfirmation(to, confirmToken string) error {
	confirmURL := fmt.Sprintf("%s/api/subscribe/confirm?token=%s", e.siteURL, confirmToken)

	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to %s!</h2>
  <p>Thank you for subscribing to our newsletter.</p>
  <p>Please confirm your subscription by clicking the button below:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%s"
       style="background-color: #4F46E5; color: white; padding: 12px 24px;
              text-decoration: none; border-radius: 6px; display: inline-block;">
      Confirm Subscription
    </a>
  </div>
  <p style="color: #666; font-size: 14px;">
    If the button doesn't work, copy and paste this link into your browser:<br>
    <a href="%s">%s</a>
  </p>
  <p style="color: #666; font-size: 12px; margin-top: 40px;">
    If you didn't subscribe to this newsletter, you can safely ignore this email.
  </p>
</div>`, siteName, confirmURL, confirmURL, confirmURL)

	from := mail.NewEmail(siteName, e.fromEmail)
	recipient := mail.NewEmail("", to)
	subject := "Confirm your subscription to " + siteName
	message := mail.NewSingleEmail(from, subject, recipient, "Confirm your subscription: "+confirmURL, html)

	return e.send(message)
}

// SendContactEmail forwards a contact-form message to the site owner, with
// Reply-To set to the visitor's address.
func (e *EmailService) SendContactEmail(fromEmail, name, messageBody string) error {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Form Message</h2>
  <p><strong>From:</strong> %s (%s)</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 6px; margin: 20px 0;">
    %s
  </div>
  <p style="color: #666; font-size: 14px;">
    Reply directly to this email to respond to %s.
  </p>
</div>`, name, fromEmail, strings.ReplaceAll(messageBody, "\n", "<br>"), name)

	from := mail.NewEmail(siteName, e.fromEmail)
	to := mail.NewEmail("", e.fromEmail)
	subject := fmt.Sprintf("New contact form message from %s", name)
	message := mail.NewSingleEmail(from, subject, to, messageBody, html)
	message.ReplyTo = mail.NewEmail(name, fromEmail)

	return e.send(message)
}

// SendNewsletter broadcasts HTML content to the given recipients, one
// personalization each so addresses are not exposed to each other.
func (e *EmailService) SendNewsletter(subject, htmlContent string, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}

	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(siteName, e.fromEmail))
	m.Subject = subject
	m.AddContent(mail.NewContent("text/html", htmlContent))
	for _, r := range recipients {
		p := mail.NewPersonalization()
		p.AddTos(mail.NewEmail("", r))
		m.AddPersonalizations(p)
	}

	return e.send(m)
}

func (e *EmailService) send(m *mail.SGMailV3) error {
	if e.apiKey == "" {
		return fmt.Errorf("sendgrid: SENDGRID_API_KEY not set")
	}

	client := sendgrid.NewSendClient(e.apiKey)
	response, err := client.Send(m)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}
