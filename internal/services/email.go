package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/peakspace-dev/peakspace/internal/config"
	"github.com/peakspace-dev/peakspace/internal/metrics"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendQuestionnaireConfirmation sends the submitter a summary of their request
func (s *EmailService) SendQuestionnaireConfirmation(to, name, summary string) error {
	subject := "We received your space request"

	textBody := fmt.Sprintf(`Hi %s,

Thanks for telling us what you're looking for:

%s

A member of our team will reach out within one business day.

PeakSpace Commercial Real Estate
`, name, summary)

	htmlBody := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #1f2933;">
<h2>Thanks, %s!</h2>
<p>We received your space request:</p>
<blockquote style="border-left: 3px solid #1c5d99; padding-left: 12px; color: #3e4c59;">%s</blockquote>
<p>A member of our team will reach out within one business day.</p>
<p style="color: #7b8794;">PeakSpace Commercial Real Estate</p>
</body></html>`, name, strings.ReplaceAll(summary, "\n", "<br>"))

	return s.send("confirmation", to, subject, htmlBody, textBody)
}

// SendLeadNotification alerts the internal distribution address about a new lead
func (s *EmailService) SendLeadNotification(name, email, phone, message string) error {
	if s.cfg.NotifyAddress == "" {
		log.Println("[EMAIL] No notify address configured, skipping lead notification")
		return nil
	}

	subject := fmt.Sprintf("New lead: %s", name)

	textBody := fmt.Sprintf(`New lead captured.

Name:    %s
Email:   %s
Phone:   %s

%s
`, name, email, phone, message)

	htmlBody := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #1f2933;">
<h2>New lead captured</h2>
<table cellpadding="4">
<tr><td><b>Name</b></td><td>%s</td></tr>
<tr><td><b>Email</b></td><td>%s</td></tr>
<tr><td><b>Phone</b></td><td>%s</td></tr>
</table>
<p>%s</p>
</body></html>`, name, email, phone, strings.ReplaceAll(message, "\n", "<br>"))

	return s.send("lead_notification", s.cfg.NotifyAddress, subject, htmlBody, textBody)
}

// SendPropertyAlert notifies a subscriber about a matching property
func (s *EmailService) SendPropertyAlert(to, propertyAddress, detail string) error {
	subject := fmt.Sprintf("New space available: %s", propertyAddress)

	textBody := fmt.Sprintf(`A space matching your requirements just listed:

%s

%s

PeakSpace Commercial Real Estate
`, propertyAddress, detail)

	htmlBody := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #1f2933;">
<h2>New space available</h2>
<h3>%s</h3>
<p>%s</p>
<p style="color: #7b8794;">PeakSpace Commercial Real Estate</p>
</body></html>`, propertyAddress, strings.ReplaceAll(detail, "\n", "<br>"))

	return s.send("property_alert", to, subject, htmlBody, textBody)
}

func (s *EmailService) send(template, to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		// In development mode, just log
		log.Printf("[EMAIL] %s would be sent to %s: %s", template, to, subject)
		metrics.EmailsSent.WithLabelValues(template, "skipped").Inc()
		return nil
	}

	if err := s.sendSMTP(to, subject, htmlBody, textBody); err != nil {
		metrics.EmailsSent.WithLabelValues(template, "failure").Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues(template, "success").Inc()
	return nil
}

// sendSMTP delivers a multipart/alternative message with both HTML and text bodies
func (s *EmailService) sendSMTP(to, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	boundary := "peakspace-boundary-42"

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n", boundary))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
