package entity

// Roles válidos para UserProfile.
const (
	RoleMaster  = "master"
	RoleManager = "manager"
	RoleFinance = "finance"
)

// ValidRole informa si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleMaster, RoleManager, RoleFinance:
		return true
	}
	return false
}

// UserProfile perfil de negocio de un usuario. AuthUserID enlaza con el usuario del
// servicio de autenticación y queda vacío hasta que la invitación se acepta.
type UserProfile struct {
	ID         string
	AuthUserID string
	Name       string
	Email      string
	Role       string // master, manager, finance
}
