package notify

import (
	"fmt"
	"log"
	"net/smtp"
)

// Channel names accepted by Notifier implementations.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notifier delivers alert messages to a recipient over a channel.
// Implementations must be safe for concurrent use; the monitor job and HTTP
// handlers both dispatch through the same instance.
type Notifier interface {
	Send(channel, recipient, subject, body string) error
}

// SMTPConfig carries the connection parameters for the SMTP notifier.
// SMS delivery goes through the carrier's email-to-SMS gateway, so both
// channels share the same transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// SMTPNotifier sends notifications through an SMTP relay.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier creates a notifier for the given SMTP relay.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send delivers one message. SMS messages omit the subject line since
// gateways truncate aggressively.
func (n *SMTPNotifier) Send(channel, recipient, subject, body string) error {
	if n.cfg.Host == "" || n.cfg.Sender == "" {
		return fmt.Errorf("smtp notifier not configured")
	}

	var msg string
	switch channel {
	case ChannelSMS:
		msg = fmt.Sprintf("From: %s\r\nTo: %s\r\n\r\n%s\r\n", n.cfg.Sender, recipient, body)
	default:
		msg = fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.cfg.Sender, recipient, subject, body)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.Host)

	if err := smtp.SendMail(addr, auth, n.cfg.Sender, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send %s notification: %w", channel, err)
	}

	return nil
}

// LogNotifier writes notifications to the process log instead of delivering
// them. Used when no SMTP relay is configured and in tests.
type LogNotifier struct{}

// Send logs the message and always succeeds.
func (LogNotifier) Send(channel, recipient, subject, body string) error {
	log.Printf("notify (%s -> %s): %s: %s", channel, recipient, subject, body)
	return nil
}
