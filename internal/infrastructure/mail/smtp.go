package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers plain-text email over SMTP.
type Sender struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger zerolog.Logger
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSender(cfg Config, logger zerolog.Logger) *Sender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Sender{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from:   from,
		auth:   auth,
		logger: logger,
	}
}

// Send delivers one message. The context is honoured up front only; the SMTP
// exchange itself is bounded by the server's own timeouts.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
