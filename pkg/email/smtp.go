package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// HeaderTag carries Message.Tag on SMTP messages.
const HeaderTag = "X-Geoapi-Tag"

// SMTPSender delivers through an SMTP relay, upgrading to TLS when the
// server offers STARTTLS.
type SMTPSender struct {
	client  *mail.Client
	from    string
	replyTo string
}

// NewSMTPSender builds a client for cfg.SMTPHost. Authentication is used
// only when a username is set.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST is required", ErrInvalidConfig)
	}
	if err := validAddress("EMAIL_FROM", cfg.From); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPTimeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.SMTPTimeout))
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &SMTPSender{client: client, from: cfg.From, replyTo: cfg.ReplyTo}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	m, err := buildMessage(s.from, s.replyTo, msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func buildMessage(from, replyTo string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if replyTo != "" {
		if err := m.ReplyTo(replyTo); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Join(ErrInvalidParams, err)
	}
	m.Subject(msg.Subject)
	if msg.Tag != "" {
		m.SetGenHeader(HeaderTag, msg.Tag)
	}
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

var _ Sender = (*SMTPSender)(nil)
