// Package mail adaptadores del correo de invitación: SMTP (gomail), Mailgun y
// uno que solo registra en el log.
package mail

import (
	"fmt"
	"html"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
)

const inviteSubject = "Invitación al panel de créditos"

var roleLabels = map[string]string{
	"master":  "administrador",
	"manager": "gestor",
	"finance": "financiero",
}

func roleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return role
}

func inviteText(msg ports.InviteEmail) string {
	return fmt.Sprintf(`Hola %s,

Fuiste invitado al panel de créditos y consorcios con el perfil %s.
Para aceptar la invitación y definir tu contraseña abre el siguiente enlace:
%s

Si no esperabas este correo puedes ignorarlo.`, msg.Name, roleLabel(msg.Role), msg.Link)
}

func inviteHTML(msg ports.InviteEmail) string {
	link := html.EscapeString(msg.Link)
	return fmt.Sprintf(`<html>
	<body style="font-family: Arial, sans-serif; line-height: 1.6;">
		<p>Hola %s,</p>
		<p>Fuiste invitado al panel de créditos y consorcios con el perfil <strong>%s</strong>.</p>
		<p><a href="%s" target="_blank" style="color: #1a73e8; font-weight: bold;">Aceptar invitación</a></p>
		<p>Si el botón no funciona copia esta dirección en el navegador:<br>%s</p>
	</body>
</html>`, html.EscapeString(msg.Name), roleLabel(msg.Role), link, link)
}
