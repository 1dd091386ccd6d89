// utils/email.go
package utils

import (
	"fmt"
	"html"
	"strings"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"go-retrofit/models"
)

// Mailer sends a single HTML e-mail.
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// PostmarkMailer sends through Postmark.
type PostmarkMailer struct {
	client *postmark.Client
	from   string
}

// NewPostmarkMailer builds a Postmark client for the server token.
func NewPostmarkMailer(apiToken, from string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(apiToken, ""),
		from:   from,
	}
}

func (pm *PostmarkMailer) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := pm.client.SendEmail(postmark.Email{
		From:     pm.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendGridMailer sends through SendGrid.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// NewSendGridMailer builds a SendGrid client for the API key.
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (sg *SendGridMailer) SendEmail(toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("", sg.from),
		subject,
		mail.NewEmail("", toEmail),
		htmlContent,
		htmlContent,
	)
	resp, err := sg.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs. It is used when no provider is configured.
type LogMailer struct {
	Log logrus.FieldLogger
}

func (lm LogMailer) SendEmail(toEmail, subject, _ string) error {
	lm.Log.WithField("to", toEmail).WithField("subject", subject).Info("email not sent: no mail provider configured")
	return nil
}

// MailConfig selects a provider.
type MailConfig struct {
	Provider      string // postmark, sendgrid or none
	PostmarkToken string
	SendGridKey   string
	Sender        string
}

// NewMailer returns the Mailer for cfg.Provider.
func NewMailer(cfg MailConfig, log logrus.FieldLogger) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "postmark":
		if cfg.PostmarkToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN is not set")
		}
		return NewPostmarkMailer(cfg.PostmarkToken, cfg.Sender), nil
	case "sendgrid":
		if cfg.SendGridKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
		}
		return NewSendGridMailer(cfg.SendGridKey, cfg.Sender), nil
	case "", "none":
		return LogMailer{Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// EmailService formats shop notifications and hands them to a Mailer.
type EmailService struct {
	mailer   Mailer
	notifyTo string
}

// NewEmailService sends notifications for new orders to notifyTo.
func NewEmailService(mailer Mailer, notifyTo string) *EmailService {
	return &EmailService{mailer: mailer, notifyTo: notifyTo}
}

// SendOrderNotification tells the business about a newly submitted order.
// It is a no-op when no recipient is configured.
func (es *EmailService) SendOrderNotification(order models.Order) error {
	if es == nil || es.notifyTo == "" {
		return nil
	}
	return es.mailer.SendEmail(es.notifyTo, orderSubject(order), orderBody(order))
}

func orderSubject(order models.Order) string {
	if order.Type == models.OrderTypeGeneralInquiry {
		return fmt.Sprintf("New inquiry from %s", order.CustomerName)
	}
	return fmt.Sprintf("New order %s: %s %s (%s)", order.ID, order.Vehicle.Brand, order.Vehicle.Model, order.Total)
}

func orderBody(order models.Order) string {
	var b strings.Builder
	esc := html.EscapeString
	fmt.Fprintf(&b, "<strong>Order %s</strong><br><br>", esc(order.ID))
	fmt.Fprintf(&b, "Customer: %s<br>Contact: %s<br>", esc(order.CustomerName), esc(order.Contact))
	if order.VehicleVIN != "" {
		fmt.Fprintf(&b, "VIN: %s<br>", esc(order.VehicleVIN))
	}
	if !order.Vehicle.IsZero() {
		fmt.Fprintf(&b, "Vehicle: %s %s %s<br>", esc(order.Vehicle.Brand), esc(order.Vehicle.Model), esc(order.Vehicle.Year))
	}
	if order.Message != "" {
		fmt.Fprintf(&b, "<br>%s<br>", esc(order.Message))
	}
	if len(order.Items) > 0 {
		b.WriteString("<ul>")
		for _, item := range order.Items {
			fmt.Fprintf(&b, "<li>%s: %s</li>", esc(item.Title), esc(item.Price))
		}
		b.WriteString("</ul>")
		fmt.Fprintf(&b, "Total: <strong>%s</strong>", esc(order.Total))
	}
	return b.String()
}
