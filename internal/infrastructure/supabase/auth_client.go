// Package supabase adaptador del servicio de autenticación hospedado (API REST de
// GoTrue). Usa net/http de la librería estándar; no requiere SDK.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/domain"
)

// Verificar en tiempo de compilación que AuthClient implementa AuthProvider.
var _ ports.AuthProvider = (*AuthClient)(nil)

const maxBodyBytes = 64 * 1024

// AuthClient cliente de /auth/v1.
type AuthClient struct {
	baseURL        string // https://<proyecto>.supabase.co/auth/v1
	anonKey        string
	serviceRoleKey string // vacío: Invite y GenerateInviteLink devuelven ErrNotConfigured
	httpClient     *http.Client
}

// NewAuthClient construye el cliente. projectURL es la URL del proyecto, sin /auth/v1.
func NewAuthClient(projectURL, anonKey, serviceRoleKey string) *AuthClient {
	return &AuthClient{
		baseURL:        strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey:        anonKey,
		serviceRoleKey: serviceRoleKey,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient reemplaza el cliente HTTP (tests).
func (c *AuthClient) WithHTTPClient(hc *http.Client) *AuthClient {
	c.httpClient = hc
	return c
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// sessionPayload respuesta de token y de signup. Con confirmación de e-mail
// pendiente, signup devuelve el usuario en la raíz y sin token.
type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         *userPayload `json:"user"`
	userPayload
}

type linkPayload struct {
	ActionLink string `json:"action_link"`
	Properties *struct {
		ActionLink string `json:"action_link"`
	} `json:"properties"`
	User *userPayload `json:"user"`
	userPayload
}

type errorPayload struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e errorPayload) text() string {
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// ── Implementación del puerto ─────────────────────────────────────────────────

func (c *AuthClient) GetSession(ctx context.Context, accessToken string) (*ports.AuthUser, error) {
	var u userPayload
	if err := c.do(ctx, "sesión", http.MethodGet, "/user", accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &ports.AuthUser{ID: u.ID, Email: u.Email}, nil
}

func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	var s sessionPayload
	if err := c.do(ctx, "login", http.MethodPost, "/token?grant_type=password", "", credentials{email, password}, &s); err != nil {
		return nil, err
	}
	return s.session(time.Now()), nil
}

func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	var s sessionPayload
	if err := c.do(ctx, "registro", http.MethodPost, "/signup", "", credentials{email, password}, &s); err != nil {
		return nil, err
	}
	return s.session(time.Now()), nil
}

// OAuthURL no hace ninguna llamada: el flujo continúa en el navegador.
func (c *AuthClient) OAuthURL(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", domain.Invalid("provider", "es requerido")
	}
	q := url.Values{"provider": {provider}}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.baseURL + "/authorize?" + q.Encode(), nil
}

func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, "logout", http.MethodPost, "/logout", accessToken, nil, nil)
}

// Invite crea el usuario y deja que el servicio envíe el correo.
func (c *AuthClient) Invite(ctx context.Context, email, redirectTo string) (*ports.AuthUser, error) {
	if c.serviceRoleKey == "" {
		return nil, domain.NotConfigured("invitación de usuarios")
	}
	path := "/invite"
	if redirectTo != "" {
		path += "?" + url.Values{"redirect_to": {redirectTo}}.Encode()
	}
	var u userPayload
	if err := c.do(ctx, "invitación", http.MethodPost, path, c.serviceRoleKey, map[string]string{"email": email}, &u); err != nil {
		return nil, err
	}
	return &ports.AuthUser{ID: u.ID, Email: u.Email}, nil
}

// GenerateInviteLink crea el usuario y devuelve el enlace sin enviar correo.
func (c *AuthClient) GenerateInviteLink(ctx context.Context, email, redirectTo string) (string, *ports.AuthUser, error) {
	if c.serviceRoleKey == "" {
		return "", nil, domain.NotConfigured("invitación de usuarios")
	}
	body := map[string]string{"type": "invite", "email": email}
	if redirectTo != "" {
		body["redirect_to"] = redirectTo
	}
	var l linkPayload
	if err := c.do(ctx, "invitación", http.MethodPost, "/admin/generate_link", c.serviceRoleKey, body, &l); err != nil {
		return "", nil, err
	}
	link := l.ActionLink
	if link == "" && l.Properties != nil {
		link = l.Properties.ActionLink
	}
	if link == "" {
		return "", nil, &domain.BackendError{Op: "invitación", Message: "el servicio no devolvió el enlace de invitación", Err: domain.ErrBackend}
	}
	u := l.userPayload
	if l.User != nil {
		u = *l.User
	}
	return link, &ports.AuthUser{ID: u.ID, Email: u.Email}, nil
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// do envía la petición y decodifica la respuesta en out (nil = se descarta).
// bearer vacío usa la anon key. Los mensajes de error del servicio se conservan
// tal cual en BackendError.Message.
func (c *AuthClient) do(ctx context.Context, op, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("auth: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "servicio de autenticación no disponible"
		if ctx.Err() != nil {
			msg = "tiempo de espera agotado"
		}
		return &domain.BackendError{Op: op, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.BackendError{Op: op, Message: "respuesta ilegible del servicio de autenticación", Err: err}
	}
	if resp.StatusCode >= 300 {
		return responseError(op, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.BackendError{Op: op, Message: "respuesta ilegible del servicio de autenticación", Err: err}
	}
	return nil
}

func responseError(op string, status int, raw []byte) error {
	var p errorPayload
	msg := ""
	if json.Unmarshal(raw, &p) == nil {
		msg = p.text()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	cause := fmt.Errorf("HTTP %d", status)
	switch {
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		op == "login" && status == http.StatusBadRequest:
		cause = errors.Join(cause, domain.ErrUnauthorized)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		cause = errors.Join(cause, domain.ErrInvalidInput)
	case status == http.StatusNotFound:
		cause = errors.Join(cause, domain.ErrNotFound)
	}
	return &domain.BackendError{Op: op, Message: msg, Err: cause}
}

func (s sessionPayload) session(now time.Time) *ports.AuthSession {
	u := s.userPayload
	if s.User != nil {
		u = *s.User
	}
	out := &ports.AuthSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         ports.AuthUser{ID: u.ID, Email: u.Email},
	}
	switch {
	case s.ExpiresAt > 0:
		out.ExpiresAt = time.Unix(s.ExpiresAt, 0).UTC()
	case s.ExpiresIn > 0:
		out.ExpiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second).UTC()
	}
	return out
}
