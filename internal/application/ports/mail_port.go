package ports

import "context"

// InviteEmail datos del correo de invitación.
type InviteEmail struct {
	To   string
	Name string
	Role string
	Link string
}

// Mailer envía los correos de invitación cuando la API genera el enlace por su cuenta.
type Mailer interface {
	SendInvite(ctx context.Context, msg InviteEmail) error
}
