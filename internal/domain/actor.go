package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleKitchen  Role = "kitchen"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleKitchen, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role may act on entities it does not own.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleManager
}

// Actor identifies who is attempting a lifecycle operation. It is always
// passed explicitly, never read from ambient session state.
type Actor struct {
	Role Role
	ID   int64
}
