package ports

import (
	"context"
	"time"
)

// AuthUser usuario del servicio de autenticación hospedado.
type AuthUser struct {
	ID    string
	Email string
}

// AuthSession sesión emitida por el servicio de autenticación.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         AuthUser
}

// AuthProvider define el puerto de salida hacia el servicio de autenticación del
// backend. La API no implementa ningún protocolo propio: todo se delega aquí y los
// mensajes de error del servicio se devuelven sin reescribir.
type AuthProvider interface {
	// GetSession valida el access token contra el servicio y devuelve su usuario.
	GetSession(ctx context.Context, accessToken string) (*AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error)
	// SignUp puede devolver una sesión sin token si el servicio exige confirmar el e-mail.
	SignUp(ctx context.Context, email, password string) (*AuthSession, error)
	// OAuthURL arma la URL de inicio del flujo OAuth; el cliente navega hacia ella.
	OAuthURL(provider, redirectTo string) (string, error)
	SignOut(ctx context.Context, accessToken string) error

	// Invite y GenerateInviteLink requieren la clave administrativa.
	Invite(ctx context.Context, email, redirectTo string) (*AuthUser, error)
	GenerateInviteLink(ctx context.Context, email, redirectTo string) (string, *AuthUser, error)
}
