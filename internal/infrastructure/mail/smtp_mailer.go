package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía por SMTP con gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewSMTPMailer port 0 usa 587. from vacío usa el usuario SMTP.
func NewSMTPMailer(host string, port int, user, password, from string, log *logger.Logger) *SMTPMailer {
	if port == 0 {
		port = 587
	}
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		log:    log.Component("mail.smtp"),
	}
}

func (s *SMTPMailer) SendInvite(ctx context.Context, msg ports.InviteEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := s.message(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error().Err(err).Str("to", msg.To).Msg("fallo el envío SMTP")
		return fmt.Errorf("smtp: %w", err)
	}
	s.log.Info().Str("to", msg.To).Msg("invitación enviada")
	return nil
}

func (s *SMTPMailer) message(msg ports.InviteEmail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", inviteSubject)
	m.SetBody("text/plain", inviteText(msg))
	m.AddAlternative("text/html", inviteHTML(msg))
	return m
}
