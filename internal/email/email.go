package email

import (
	"go-recruit/internal/config"

	"go.uber.org/zap"
)

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Email is one outbound message.
type Email struct {
	From        string
	To          []string
	Subject     string
	HtmlBody    string
	Attachments []Attachment
}

// Sender delivers messages. Delivery is fire-and-forget from the caller's
// point of view: an error means the message was not accepted by the relay.
type Sender interface {
	Send(email *Email) error
}

type smtpSender struct {
	cfg    SMTPConfig
	from   string
	logger *zap.Logger
}

func NewSender(cfg *config.Config, logger *zap.Logger) Sender {
	return &smtpSender{
		cfg: SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
		},
		from:   cfg.EmailFrom,
		logger: logger,
	}
}

func (s *smtpSender) Send(email *Email) error {
	if email.From == "" {
		email.From = s.from
	}
	if err := SendSMTP(s.cfg, email); err != nil {
		s.logger.Error("email delivery failed",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err))
		return err
	}
	s.logger.Info("email sent",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}
