package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

// Sender is the notification surface the domains depend on. All sends are
// best-effort: failures are logged by the worker and never propagate to the
// operation that triggered them.
type Sender interface {
	SendWelcome(to, username string)
	SendOrderConfirmation(to, username, productName, orderID string, amount int)
	SendCreditAdded(to, username string, amount, newBalance int, reason string)
	SendPasswordReset(to, username, resetToken string)
}

// Service renders templates and sends through an async queue worker.
type Service struct {
	client       *ResendClient
	baseURL      string
	templates    map[string]*template.Template
	baseTemplate *template.Template
	queue        chan *queuedEmail
	wg           sync.WaitGroup
}

type queuedEmail struct {
	To           string
	Subject      string
	Title        string
	TemplateName string
	Data         interface{}
}

// NewService creates the email service and starts its worker.
func NewService(config ResendConfig, baseURL string) *Service {
	s := &Service{
		client:    NewResendClient(config),
		baseURL:   baseURL,
		templates: make(map[string]*template.Template),
		queue:     make(chan *queuedEmail, 100),
	}

	s.baseTemplate = template.Must(template.New("base").Parse(BaseTemplate))
	s.loadTemplates()

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) loadTemplates() {
	templates := map[string]string{
		"welcome":            WelcomeTemplate,
		"order_confirmation": OrderConfirmationTemplate,
		"credit_added":       CreditAddedTemplate,
		"password_reset":     PasswordResetTemplate,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

// Close drains the queue and stops the worker.
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) send(ctx context.Context, email *queuedEmail) error {
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		log.Warn().Str("template", email.TemplateName).Msg("Template not found")
		return nil
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, email.Data); err != nil {
		return err
	}

	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Title":   email.Title,
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return err
	}

	return s.client.Send(ctx, &EmailMessage{
		To:          email.To,
		Subject:     email.Subject,
		HTMLContent: htmlBuf.String(),
	})
}

func (s *Service) enqueue(email *queuedEmail) {
	select {
	case s.queue <- email:
	default:
		log.Warn().Str("to", email.To).Str("template", email.TemplateName).Msg("Email queue full, dropping")
	}
}

// SendWelcome queues the post-registration welcome email.
func (s *Service) SendWelcome(to, username string) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Welcome - Your Account Is Ready!",
		Title:        "Welcome!",
		TemplateName: "welcome",
		Data: map[string]interface{}{
			"Username": username,
			"BaseURL":  s.baseURL,
		},
	})
}

// SendOrderConfirmation queues the purchase confirmation email.
func (s *Service) SendOrderConfirmation(to, username, productName, orderID string, amount int) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Order Received - " + productName,
		Title:        "Order Confirmed",
		TemplateName: "order_confirmation",
		Data: map[string]interface{}{
			"Username":    username,
			"ProductName": productName,
			"OrderID":     orderID,
			"Amount":      amount,
		},
	})
}

// SendCreditAdded queues the credit-grant notification email.
func (s *Service) SendCreditAdded(to, username string, amount, newBalance int, reason string) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Credits Added to Your Account",
		Title:        "Credits Added",
		TemplateName: "credit_added",
		Data: map[string]interface{}{
			"Username":   username,
			"Amount":     amount,
			"NewBalance": newBalance,
			"Reason":     reason,
		},
	})
}

// SendPasswordReset queues the password reset email.
func (s *Service) SendPasswordReset(to, username, resetToken string) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Password Reset Request",
		Title:        "Password Reset",
		TemplateName: "password_reset",
		Data: map[string]interface{}{
			"Username": username,
			"Token":    resetToken,
			"BaseURL":  s.baseURL,
		},
	})
}

// NopSender discards all notifications. Used in tests and when email is
// disabled entirely.
type NopSender struct{}

func (NopSender) SendWelcome(string, string) {}

func (NopSender) SendOrderConfirmation(string, string, string, string, int) {}

func (NopSender) SendCreditAdded(string, string, int, int, string) {}

func (NopSender) SendPasswordReset(string, string, string) {}
