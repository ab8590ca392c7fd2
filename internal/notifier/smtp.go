package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/amishk599/interndigest/internal/model"
)

// Ensure SMTPSender implements model.Sender.
var _ model.Sender = (*SMTPSender)(nil)

var errNoRecipients = errors.New("no recipients")

// SMTPConfig holds the mail server settings for SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender delivers the digest as a multipart/alternative email
// (plain text plus HTML) over an authenticated TLS connection.
type SMTPSender struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender returns a sender for the given server settings.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send dials the server once and sends msg to every recipient in one message.
func (s *SMTPSender) Send(ctx context.Context, msg model.Message) error {
	m, err := s.buildMsg(msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send email via %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}

	s.logger.Info("email digest sent", "recipients", len(msg.Recipients), "postings", len(msg.Postings))
	return nil
}

func (s *SMTPSender) buildMsg(msg model.Message) (*mail.Msg, error) {
	if len(msg.Recipients) == 0 {
		return nil, errNoRecipients
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from %q: %w", s.cfg.From, err)
	}
	if err := m.To(msg.Recipients...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}
	return m, nil
}
