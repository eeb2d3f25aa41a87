// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) SendInvitationEmail(invitation *models.Invitation, token string) error {
	tmpl := s.getEmailTemplate("invitation")

	data := map[string]interface{}{
		"FirstName": invitation.FirstName,
		"AcceptURL": fmt.Sprintf("%s/accept-invitation?token=%s", s.config.Frontend.BaseURL, token),
		"ExpiresAt": invitation.ExpiresAt.Format("January 2, 2006"),
		"FromName":  s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(invitation.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendIntakeReceivedEmail(user *models.User, client *models.Client) error {
	tmpl := s.getEmailTemplate("intake_received")

	data := map[string]interface{}{
		"FirstName":    user.FirstName,
		"BusinessName": client.BusinessName,
		"PortalURL":    fmt.Sprintf("%s/portal", s.config.Frontend.BaseURL),
		"FromName":     s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendDocumentReviewedEmail(user *models.User, document *models.Document) error {
	tmpl := s.getEmailTemplate("document_reviewed")

	verdict := "approved"
	if document.Status == models.DocumentStatusRejected {
		verdict = "rejected"
	}

	data := map[string]interface{}{
		"FirstName":    user.FirstName,
		"DocumentType": document.DocumentType,
		"Verdict":      verdict,
		"ReviewNotes":  document.ReviewNotes,
		"PortalURL":    fmt.Sprintf("%s/portal/documents", s.config.Frontend.BaseURL),
		"FromName":     s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) SendStatusChangeEmail(user *models.User, client *models.Client, oldStatus models.ClientStatus) error {
	tmpl := s.getEmailTemplate("status_change")

	data := map[string]interface{}{
		"FirstName":    user.FirstName,
		"BusinessName": client.BusinessName,
		"OldStatus":    string(oldStatus),
		"NewStatus":    string(client.Status),
		"PortalURL":    fmt.Sprintf("%s/portal", s.config.Frontend.BaseURL),
		"FromName":     s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(user.Email, tmpl.Subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	// Setup authentication
	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	// Compose message
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	// In a real implementation, these would be loaded from files or database
	templates := map[string]EmailTemplate{
		"invitation": {
			Subject: "You're invited to the Credara credentialing portal",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.FirstName}},</h2>
	<p>You have been invited to the Credara credentialing portal. Click the link below to set your password and get started:</p>
	<a href="{{.AcceptURL}}">Accept Invitation</a>
	<p>This invitation expires on {{.ExpiresAt}}.</p>
	<p>Best regards,<br>{{.FromName}}</p>
</body>
</html>`,
		},
		"intake_received": {
			Subject: "Intake received",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.FirstName}},</h2>
	<p>We received the intake for {{.BusinessName}}. Our team will review it and start the credentialing process.</p>
	<p>You can upload supporting documents and track progress in the portal:</p>
	<a href="{{.PortalURL}}">Open Portal</a>
	<p>Best regards,<br>{{.FromName}}</p>
</body>
</html>`,
		},
		"document_reviewed": {
			Subject: "Document review update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.FirstName}},</h2>
	<p>Your document "{{.DocumentType}}" has been {{.Verdict}}.</p>
	{{if .ReviewNotes}}<p>Reviewer notes: {{.ReviewNotes}}</p>{{end}}
	<a href="{{.PortalURL}}">View Documents</a>
	<p>Best regards,<br>{{.FromName}}</p>
</body>
</html>`,
		},
		"status_change": {
			Subject: "Credentialing status update",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.FirstName}},</h2>
	<p>The credentialing status for {{.BusinessName}} changed from {{.OldStatus}} to {{.NewStatus}}.</p>
	<a href="{{.PortalURL}}">Open Portal</a>
	<p>Best regards,<br>{{.FromName}}</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
