package domain

// ActorRole роль инициатора действия над приёмом
type ActorRole string

const (
	RoleClient ActorRole = "client"
	RoleAdmin  ActorRole = "admin"
)

// ParseActorRole конвертирует строку в ActorRole
// Возвращает false для неизвестной роли
func ParseActorRole(s string) (ActorRole, bool) {
	switch ActorRole(s) {
	case RoleClient:
		return RoleClient, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// IsAdmin returns true for the admin role
func (r ActorRole) IsAdmin() bool {
	return r == RoleAdmin
}
