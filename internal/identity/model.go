package identity

import "time"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleBrigade     Role = "brigade"
	RoleStorekeeper Role = "storekeeper"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleBrigade, RoleStorekeeper:
		return true
	}
	return false
}

type User struct {
	ID        int64
	Phone     string
	Name      string
	Role      Role
	TeamID    *int64
	CreatedAt time.Time
}
