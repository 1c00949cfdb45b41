package actor

// Role identifies which workshop role an actor holds. Checkpoint writes are
// gated on roles, so every request must carry an actor.
type Role string

const (
	// RoleController runs the workshop floor: work start/end and every
	// blocking interval timestamp belong to this role.
	RoleController Role = "controller"
	// RoleServiceAdvisor handles reception: arrival, reception, paperwork
	// and estimation timestamps.
	RoleServiceAdvisor Role = "service_advisor"
	// RoleFrontOffice hands the vehicle back to the customer.
	RoleFrontOffice Role = "front_office"
)

// Valid reports whether the role is one of the known workshop roles.
func (r Role) Valid() bool {
	switch r {
	case RoleController, RoleServiceAdvisor, RoleFrontOffice:
		return true
	}
	return false
}

type Actor struct {
	Id   int
	Uid  string
	Name string
	Role Role
}
