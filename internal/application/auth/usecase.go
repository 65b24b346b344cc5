// Package auth expone las operaciones de sesión. El protocolo lo implementa el
// servicio de autenticación del backend; aquí solo se delega, se verifica el
// access token y se resuelve el rol de negocio desde los perfiles de usuario.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/pkg/jwt"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

const defaultSessionTTL = time.Minute

// Config verificación de tokens.
type Config struct {
	// JWTSecret permite verificar el token localmente; vacío = se consulta al servicio.
	JWTSecret  string
	SessionTTL time.Duration
	// BootstrapMasterEmail recibe el rol master mientras no haya perfiles.
	BootstrapMasterEmail string
}

// ProfileLookup perfiles de usuario del store.
type ProfileLookup interface {
	UserForAuth(authUserID, email string) (*entity.UserProfile, error)
	Users() []*entity.UserProfile
}

// Principal usuario autenticado de la petición en curso.
type Principal struct {
	UserID  string
	Email   string
	Role    string              // rol de negocio; vacío si no tiene perfil
	Profile *entity.UserProfile // nil si no tiene perfil
}

// IsMaster informa si puede administrar usuarios y reiniciar datos.
func (p *Principal) IsMaster() bool { return p != nil && p.Role == entity.RoleMaster }

// AuthUseCase casos de uso de sesión.
type AuthUseCase struct {
	provider  ports.AuthProvider // nil en modo demo
	profiles  ProfileLookup
	secret    string
	bootstrap string
	sessions  *cache.Cache // access token -> *ports.AuthUser
	log       *logger.Logger
}

// NewAuthUseCase construye el caso de uso. provider nil deja todas las operaciones
// en ErrNotConfigured.
func NewAuthUseCase(provider ports.AuthProvider, profiles ProfileLookup, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		provider:  provider,
		profiles:  profiles,
		secret:    cfg.JWTSecret,
		bootstrap: strings.ToLower(strings.TrimSpace(cfg.BootstrapMasterEmail)),
		sessions:  cache.New(cfg.SessionTTL, 2*cfg.SessionTTL),
		log:       log.Component("auth"),
	}
}

func (uc *AuthUseCase) configured() error {
	if uc.provider == nil {
		return domain.NotConfigured("autenticación")
	}
	return nil
}

func validateCredentials(in dto.CredentialsRequest) (dto.CredentialsRequest, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" {
		return in, domain.Invalid("email", "es requerido")
	}
	if in.Password == "" {
		return in, domain.Invalid("password", "es requerida")
	}
	return in, nil
}

// Login inicia sesión con e-mail y contraseña. Los errores del servicio se
// devuelven sin reescribir.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.CredentialsRequest) (*dto.SessionResponse, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	in, err := validateCredentials(in)
	if err != nil {
		return nil, err
	}
	sess, err := uc.provider.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		uc.log.Info().Err(err).Str("email", in.Email).Msg("login rechazado")
		return nil, err
	}
	uc.sessions.SetDefault(sess.AccessToken, &sess.User)
	return uc.sessionResponse(sess), nil
}

// SignUp registra un usuario nuevo. Si el servicio exige confirmar el e-mail la
// respuesta no trae access token.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.CredentialsRequest) (*dto.SessionResponse, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	in, err := validateCredentials(in)
	if err != nil {
		return nil, err
	}
	sess, err := uc.provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if sess.AccessToken != "" {
		uc.sessions.SetDefault(sess.AccessToken, &sess.User)
	}
	return uc.sessionResponse(sess), nil
}

// Logout invalida el token en el servicio y en el caché local.
func (uc *AuthUseCase) Logout(ctx context.Context, accessToken string) error {
	if err := uc.configured(); err != nil {
		return err
	}
	uc.sessions.Delete(accessToken)
	return uc.provider.SignOut(ctx, accessToken)
}

// OAuthURL URL de inicio del flujo OAuth con el proveedor indicado.
func (uc *AuthUseCase) OAuthURL(provider, redirectTo string) (*dto.OAuthURLResponse, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, domain.Invalid("provider", "es requerido")
	}
	u, err := uc.provider.OAuthURL(provider, redirectTo)
	if err != nil {
		return nil, err
	}
	return &dto.OAuthURLResponse{URL: u}, nil
}

// Session devuelve la sesión del token con el perfil enlazado.
func (uc *AuthUseCase) Session(ctx context.Context, accessToken string) (*dto.SessionResponse, error) {
	p, err := uc.VerifyToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	out := &dto.SessionResponse{UserID: p.UserID, Email: p.Email}
	if p.Profile != nil {
		r := dto.UserFromEntity(p.Profile)
		out.Profile = &r
	}
	return out, nil
}

// VerifyToken valida el access token y resuelve el rol de negocio. Sin ningún
// perfil registrado, el primer usuario autenticado actúa como master para poder
// dar de alta los demás.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, accessToken string) (*Principal, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, fmt.Errorf("token ausente: %w", domain.ErrUnauthorized)
	}

	var user ports.AuthUser
	if uc.secret != "" {
		s, err := jwt.Parse(uc.secret, accessToken)
		if err != nil {
			return nil, fmt.Errorf("token inválido: %w", domain.ErrUnauthorized)
		}
		user = ports.AuthUser{ID: s.UserID, Email: s.Email}
	} else if cached, ok := uc.sessions.Get(accessToken); ok {
		user = *cached.(*ports.AuthUser)
	} else {
		u, err := uc.provider.GetSession(ctx, accessToken)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return nil, err
			}
			return nil, fmt.Errorf("verificar sesión: %w", err)
		}
		user = *u
		uc.sessions.SetDefault(accessToken, u)
	}

	p := &Principal{UserID: user.ID, Email: user.Email}
	if profile, err := uc.profiles.UserForAuth(user.ID, user.Email); err == nil {
		p.Profile = profile
		p.Role = profile.Role
	} else if uc.isBootstrapMaster(user.Email) {
		p.Role = entity.RoleMaster
	}
	return p, nil
}

// isBootstrapMaster solo el e-mail configurado, y solo mientras no exista ningún perfil.
func (uc *AuthUseCase) isBootstrapMaster(email string) bool {
	if uc.bootstrap == "" || !strings.EqualFold(strings.TrimSpace(email), uc.bootstrap) {
		return false
	}
	return len(uc.profiles.Users()) == 0
}

func (uc *AuthUseCase) sessionResponse(s *ports.AuthSession) *dto.SessionResponse {
	out := &dto.SessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		UserID:       s.User.ID,
		Email:        s.User.Email,
	}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		out.ExpiresAt = &exp
	}
	if profile, err := uc.profiles.UserForAuth(s.User.ID, s.User.Email); err == nil {
		r := dto.UserFromEntity(profile)
		out.Profile = &r
	}
	return out
}
