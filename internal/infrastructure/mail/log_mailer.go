package mail

import (
	"context"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer no envía nada: registra el enlace. Útil en desarrollo.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.Component("mail.log")}
}

func (l *LogMailer) SendInvite(_ context.Context, msg ports.InviteEmail) error {
	l.log.Info().Str("to", msg.To).Str("role", msg.Role).Str("link", msg.Link).Msg("invitación (no enviada)")
	return nil
}
