package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

var _ ports.Mailer = (*MailgunMailer)(nil)

const mailgunTimeout = 20 * time.Second

// MailgunMailer envía a través de la API de Mailgun.
type MailgunMailer struct {
	mg   mailgun.Mailgun
	from string
	log  *logger.Logger
}

func NewMailgunMailer(domain, apiKey, from string, log *logger.Logger) *MailgunMailer {
	return &MailgunMailer{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
		log:  log.Component("mail.mailgun"),
	}
}

func (s *MailgunMailer) SendInvite(ctx context.Context, msg ports.InviteEmail) error {
	message := s.mg.NewMessage(s.from, inviteSubject, inviteText(msg), msg.To)
	message.SetHtml(inviteHTML(msg))

	ctx, cancel := context.WithTimeout(ctx, mailgunTimeout)
	defer cancel()
	resp, id, err := s.mg.Send(ctx, message)
	if err != nil {
		s.log.Error().Err(err).Str("to", msg.To).Str("resp", resp).Msg("fallo el envío por Mailgun")
		return fmt.Errorf("mailgun: %w", err)
	}
	s.log.Info().Str("to", msg.To).Str("id", id).Msg("invitación enviada")
	return nil
}
