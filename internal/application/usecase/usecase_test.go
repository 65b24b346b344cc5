package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Creditos-api/pkg/format"
)

func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), memory.NewWithSampleData(), store.Options{Locale: "pt-BR"})
	require.NoError(t, err)
	return s
}

func brl() *format.Formatter { return format.New("pt-BR", "BRL") }

// mapCache caché en memoria que registra lecturas y escrituras.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

// fakeAuth registra las llamadas de invitación.
type fakeAuth struct {
	ports.AuthProvider
	invited   []string
	linked    []string
	inviteErr error
}

func (f *fakeAuth) Invite(_ context.Context, email, _ string) (*ports.AuthUser, error) {
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	f.invited = append(f.invited, email)
	return &ports.AuthUser{ID: "auth-" + email, Email: email}, nil
}

func (f *fakeAuth) GenerateInviteLink(_ context.Context, email, redirectTo string) (string, *ports.AuthUser, error) {
	f.linked = append(f.linked, email)
	return "https://auth.example.com/verify?token=abc&redirect_to=" + redirectTo, &ports.AuthUser{ID: "auth-" + email, Email: email}, nil
}

type fakeMailer struct {
	sent []ports.InviteEmail
	err  error
}

func (m *fakeMailer) SendInvite(_ context.Context, msg ports.InviteEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var errSMTP = errors.New("smtp: conexión rechazada")
