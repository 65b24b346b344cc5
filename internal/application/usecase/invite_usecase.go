package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/validation"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

const (
	SentByService = "service"
	SentByAPI     = "api"
)

// UserDirectory perfiles de usuario del store.
type UserDirectory interface {
	Users() []*entity.UserProfile
	SaveUser(ctx context.Context, u *entity.UserProfile) (*entity.UserProfile, error)
}

// InviteConfig parámetros de invitación.
type InviteConfig struct {
	Enabled    bool   // hay service role key
	RedirectTo string // URL a la que vuelve el invitado tras aceptar
}

// InviteUseCase invita usuarios a través del servicio de autenticación y guarda
// el perfil enlazado al usuario creado.
type InviteUseCase struct {
	users  UserDirectory
	auth   ports.AuthProvider
	mailer ports.Mailer // opcional: si está, la API envía el correo
	cfg    InviteConfig
	log    *logger.Logger
}

func NewInviteUseCase(users UserDirectory, auth ports.AuthProvider, mailer ports.Mailer, cfg InviteConfig, log *logger.Logger) *InviteUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InviteUseCase{users: users, auth: auth, mailer: mailer, cfg: cfg, log: log.Component("invite")}
}

// Enabled informa si las invitaciones están disponibles.
func (uc *InviteUseCase) Enabled() bool { return uc.cfg.Enabled && uc.auth != nil }

// Invite valida, invita y guarda el perfil. Si ya existe un perfil con ese e-mail
// se reutiliza su id.
func (uc *InviteUseCase) Invite(ctx context.Context, req dto.InviteRequest) (*dto.InviteResponse, error) {
	if !uc.Enabled() {
		return nil, domain.NotConfigured("invitación de usuarios")
	}
	profile := &entity.UserProfile{Name: req.Name, Email: req.Email, Role: req.Role}
	if err := validation.UserProfile(profile); err != nil {
		return nil, err
	}
	for _, u := range uc.users.Users() {
		if strings.EqualFold(u.Email, profile.Email) {
			profile.ID = u.ID
			break
		}
	}

	var (
		authUser *ports.AuthUser
		sentBy   string
	)
	if uc.mailer != nil {
		link, user, err := uc.auth.GenerateInviteLink(ctx, profile.Email, uc.cfg.RedirectTo)
		if err != nil {
			return nil, err
		}
		msg := ports.InviteEmail{To: profile.Email, Name: profile.Name, Role: profile.Role, Link: link}
		if err := uc.mailer.SendInvite(ctx, msg); err != nil {
			return nil, fmt.Errorf("enviar invitación a %s: %w", profile.Email, err)
		}
		authUser, sentBy = user, SentByAPI
	} else {
		user, err := uc.auth.Invite(ctx, profile.Email, uc.cfg.RedirectTo)
		if err != nil {
			return nil, err
		}
		authUser, sentBy = user, SentByService
	}
	if authUser != nil {
		profile.AuthUserID = authUser.ID
	}

	saved, err := uc.users.SaveUser(ctx, profile)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("email", saved.Email).Str("role", saved.Role).Str("sent_by", sentBy).Msg("usuario invitado")
	return &dto.InviteResponse{User: dto.UserFromEntity(saved), SentBy: sentBy}, nil
}
