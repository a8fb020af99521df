package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendLeaveDecision(to string, data LeaveDecisionData) error
}

// LeaveDecisionData fills templates/leave_decision.html
type LeaveDecisionData struct {
	EmployeeName string
	LeaveType    string
	StartDate    string
	EndDate      string
	Approved     bool
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// SendLeaveDecision tells the requester how their leave request was decided
func (s *emailServiceImpl) SendLeaveDecision(to string, data LeaveDecisionData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	verdict := "Rejected"
	if data.Approved {
		verdict = "Approved"
	}
	subject := fmt.Sprintf("%s %s: %s to %s", data.LeaveType, verdict, data.StartDate, data.EndDate)
	return s.sendHTML(to, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
