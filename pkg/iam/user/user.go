package user

import (
	"time"

	"github.com/talenthub/portal/pkg/kernel"
)

// Role is the account's portal role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleRRHH  Role = "rrhh"
	RoleUser  Role = "user"
)

// IsStaff reports whether the role grants access to the admin surface
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleRRHH
}

// User is the candidate's (or staff member's) account record. The
// portal core consumes it read-only: snapshot fallback on Submit and
// account fields in the admin listing.
type User struct {
	ID        kernel.UserID    `db:"id" json:"id"`
	Email     kernel.Email     `db:"email" json:"email"`
	FirstName kernel.FirstName `db:"first_name" json:"first_name"`
	LastName  kernel.LastName  `db:"last_name" json:"last_name"`
	Phone     kernel.Phone     `db:"phone" json:"phone"`
	Address   string           `db:"address" json:"address"`
	Role      Role             `db:"role" json:"role"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}
