// Package email delivers relay messages over SMTP and resolves their
// attachments.
package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/paymentflow/backend/internal/domain/notification"
)

var _ notification.Sender = (*SMTPSender)(nil)

// SMTPSender sends each message on its own connection, using the SMTP
// settings carried by the message.
type SMTPSender struct {
	timeout time.Duration
	logger  *zap.Logger
	// dial is replaced in tests
	dial func(ctx context.Context, client *mail.Client, msg *mail.Msg) error
}

// SenderOption configures an SMTPSender
type SenderOption func(*SMTPSender)

// WithSenderLogger sets the logger
func WithSenderLogger(logger *zap.Logger) SenderOption {
	return func(s *SMTPSender) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSMTPSender creates a sender. timeout bounds the dial and every SMTP
// command; zero means 30s.
func NewSMTPSender(timeout time.Duration, opts ...SenderOption) *SMTPSender {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &SMTPSender{
		timeout: timeout,
		logger:  zap.NewNop(),
		dial: func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements notification.Sender
func (s *SMTPSender) Send(ctx context.Context, msg notification.Message, attachment *notification.Attachment) error {
	if err := msg.Settings.Validate(); err != nil {
		return err
	}
	m, err := buildMessage(msg, attachment)
	if err != nil {
		return err
	}
	client, err := newClient(msg.Settings, s.timeout)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.dial(ctx, client, m); err != nil {
		return fmt.Errorf("smtp send via %s:%d: %w", msg.Settings.Host, msg.Settings.Port, err)
	}
	s.logger.Debug("Email sent",
		zap.String("host", msg.Settings.Host),
		zap.Int("recipients", len(msg.Recipients())),
		zap.Bool("attachment", attachment != nil),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func buildMessage(msg notification.Message, attachment *notification.Attachment) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.Settings.FromName, msg.Settings.FromEmail); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.Recipients()...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if attachment != nil {
		name := attachment.Filename
		if name == "" {
			name = "attachment"
		}
		var opts []mail.FileOption
		if attachment.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(attachment.ContentType)))
		}
		if err := m.AttachReader(name, bytes.NewReader(attachment.Content), opts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", name, err)
		}
	}
	return m, nil
}

func newClient(settings notification.SMTPSettings, timeout time.Duration) (*mail.Client, error) {
	if settings.Host == "" {
		return nil, errors.New("host is required")
	}
	opts := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithTimeout(timeout),
	}
	if settings.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.Username),
			mail.WithPassword(settings.Password),
		)
	}
	return mail.NewClient(settings.Host, opts...)
}
