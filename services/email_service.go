// File: /services/email_service.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"socialnet-api/config"
)

// EmailService sends the welcome mail after registration. When no SMTP
// host is configured the service is a no-op, so local setups work without
// a mail server.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

func (es *EmailService) SendWelcomeEmail(email, firstName string) error {
	if !es.Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to SocialNet")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. Log in with your email or phone number.</p>
	`, firstName))

	return es.dialer.DialAndSend(m)
}
