package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single HTML email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"-"`
	Tag     string `json:"tag,omitempty"` // Tag groups messages in provider dashboards.
}

// Validate reports whether the message is complete enough to send.
func (m Message) Validate() error {
	if err := validAddress("To", m.To); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.ContainsAny(m.Subject, "\r\n") {
		return fmt.Errorf("%w: Subject must be a single line", ErrInvalidParams)
	}
	if strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("%w: HTML body is required", ErrInvalidParams)
	}
	return nil
}

// validAddress accepts a bare address ("ops@example.com"), not a display
// name form.
func validAddress(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return fmt.Errorf("%s must be a valid email address", field)
	}
	if _, domain, _ := strings.Cut(value, "@"); !strings.Contains(domain, ".") {
		return fmt.Errorf("%s must be a valid email address", field)
	}
	return nil
}

// NewSender builds the transport selected by cfg.Kind.
func NewSender(cfg Config) (Sender, error) {
	switch cfg.Kind() {
	case TransportPostmark:
		return NewPostmarkSender(cfg)
	case TransportSMTP:
		return NewSMTPSender(cfg)
	default:
		return NewFileSender(cfg.DevDir), nil
	}
}
