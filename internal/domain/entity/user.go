package entity

import "time"

// Roles válidos para User, de mayor a menor privilegio.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleAdmin:  3,
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleAtLeast indica si role alcanza el nivel de required (admin > editor > viewer).
func RoleAtLeast(role, required string) bool {
	have, ok := roleRank[role]
	if !ok {
		return false
	}
	return have >= roleRank[required]
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string
	CreatedAt    time.Time
}

// Actor identifica a quien ejecuta una operación; nil significa "sin sesión".
type Actor struct {
	UserID   string
	Username string
	Role     string
}
