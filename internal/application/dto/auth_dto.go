package dto

import "time"

// CredentialsRequest entrada de login y registro.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse sesión vigente. AccessToken vacío tras un registro indica que
// falta confirmar el e-mail.
type SessionResponse struct {
	AccessToken  string        `json:"access_token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time    `json:"expires_at,omitempty"`
	UserID       string        `json:"user_id"`
	Email        string        `json:"email"`
	Profile      *UserResponse `json:"profile,omitempty"`
}

// OAuthURLResponse URL a la que el cliente debe navegar.
type OAuthURLResponse struct {
	URL string `json:"url"`
}
