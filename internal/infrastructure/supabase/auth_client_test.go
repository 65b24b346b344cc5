package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/supabase"
)

const (
	anonKey    = "anon-key"
	serviceKey = "service-key"
)

// fakeGoTrue servidor mínimo que imita los endpoints usados por el cliente.
func fakeGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, anonKey, r.Header.Get("apikey"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "correcta" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1893456000,"user":{"id":"u-1","email":"` + body["email"] + `"}}`))
	})
	mux.HandleFunc("POST /auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"u-2","email":"nuevo@x.com","confirmation_sent_at":"2025-01-01T00:00:00Z"}`))
	})
	mux.HandleFunc("GET /auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT: unable to parse or verify signature"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"ana@alfa.com.br"}`))
	})
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /auth/v1/invite", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+serviceKey, r.Header.Get("Authorization"))
		assert.Equal(t, "https://app.example.com", r.URL.Query().Get("redirect_to"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] == "existe@x.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"msg":"A user with this email address has already been registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-3","email":"` + body["email"] + `"}`))
	})
	mux.HandleFunc("POST /auth/v1/admin/generate_link", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+serviceKey, r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "invite", body["type"])
		_, _ = w.Write([]byte(`{"id":"u-4","email":"` + body["email"] + `","properties":{"action_link":"https://x.supabase.co/auth/v1/verify?token=t&type=invite"}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, serviceRole string) *supabase.AuthClient {
	srv := fakeGoTrue(t)
	return supabase.NewAuthClient(srv.URL+"/", anonKey, serviceRole).WithHTTPClient(srv.Client())
}

func TestSignInWithPassword(t *testing.T) {
	c := newClient(t, "")

	s, err := c.SignInWithPassword(context.Background(), "ana@alfa.com.br", "correcta")
	require.NoError(t, err)
	assert.Equal(t, "at", s.AccessToken)
	assert.Equal(t, "u-1", s.User.ID)
	assert.Equal(t, 2030, s.ExpiresAt.Year())
}

func TestSignInWithPassword_MensajeDelServicioTalCual(t *testing.T) {
	c := newClient(t, "")

	_, err := c.SignInWithPassword(context.Background(), "ana@alfa.com.br", "mala")
	var be *domain.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Invalid login credentials", be.Message)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestSignUp_ConfirmacionPendiente(t *testing.T) {
	c := newClient(t, "")

	s, err := c.SignUp(context.Background(), "nuevo@x.com", "123456")
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken)
	assert.True(t, s.ExpiresAt.IsZero())
	assert.Equal(t, "u-2", s.User.ID)
}

func TestGetSession(t *testing.T) {
	c := newClient(t, "")

	u, err := c.GetSession(context.Background(), "at")
	require.NoError(t, err)
	assert.Equal(t, "ana@alfa.com.br", u.Email)

	_, err = c.GetSession(context.Background(), "vencido")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Contains(t, err.Error(), "invalid JWT")
}

func TestSignOut(t *testing.T) {
	c := newClient(t, "")
	assert.NoError(t, c.SignOut(context.Background(), "at"))
}

func TestOAuthURL(t *testing.T) {
	c := supabase.NewAuthClient("https://proj.supabase.co", anonKey, "")

	u, err := c.OAuthURL("google", "https://app.example.com/cb")
	require.NoError(t, err)
	assert.Equal(t, "https://proj.supabase.co/auth/v1/authorize?provider=google&redirect_to=https%3A%2F%2Fapp.example.com%2Fcb", u)
}

func TestInvite(t *testing.T) {
	c := newClient(t, serviceKey)

	u, err := c.Invite(context.Background(), "nueva@x.com", "https://app.example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-3", u.ID)

	_, err = c.Invite(context.Background(), "existe@x.com", "https://app.example.com")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "already been registered")
}

func TestInvite_SinServiceKey(t *testing.T) {
	c := newClient(t, "")

	_, err := c.Invite(context.Background(), "nueva@x.com", "")
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
	_, _, err = c.GenerateInviteLink(context.Background(), "nueva@x.com", "")
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestGenerateInviteLink(t *testing.T) {
	c := newClient(t, serviceKey)

	link, u, err := c.GenerateInviteLink(context.Background(), "nueva@x.com", "https://app.example.com")
	require.NoError(t, err)
	assert.Contains(t, link, "type=invite")
	assert.Equal(t, "u-4", u.ID)
	assert.Equal(t, "nueva@x.com", u.Email)
}

func TestServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := supabase.NewAuthClient(url, anonKey, "")

	_, err := c.GetSession(context.Background(), "at")
	assert.True(t, errors.Is(err, domain.ErrBackend))
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}
