package dto

import "github.com/jhoicas/Creditos-api/internal/domain/entity"

// UserRequest alta o edición de perfil.
type UserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	AuthUserID string `json:"auth_user_id,omitempty"`
}

// UserResponse salida de perfil.
type UserResponse struct {
	ID         string `json:"id"`
	AuthUserID string `json:"auth_user_id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

// InviteRequest invitación de un usuario nuevo.
type InviteRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteResponse resultado de la invitación.
type InviteResponse struct {
	User UserResponse `json:"user"`
	// SentBy "service" si el correo lo envió el servicio de autenticación, "api" si lo envió la API.
	SentBy string `json:"sent_by"`
}

func (r UserRequest) ToEntity(id string) *entity.UserProfile {
	return &entity.UserProfile{ID: id, AuthUserID: r.AuthUserID, Name: r.Name, Email: r.Email, Role: r.Role}
}

func UserFromEntity(u *entity.UserProfile) UserResponse {
	return UserResponse{ID: u.ID, AuthUserID: u.AuthUserID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func UsersFromEntities(list []*entity.UserProfile) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, UserFromEntity(u))
	}
	return out
}
