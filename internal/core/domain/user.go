package domain

import "time"

// Role is the authorization level of an account. Roles form a total order:
// consumer < creator < admin.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleCreator  Role = "creator"
	RoleAdmin    Role = "admin"
)

var roleLevels = map[Role]int{
	RoleConsumer: 1,
	RoleCreator:  2,
	RoleAdmin:    3,
}

// Level returns the numeric rank of the role; 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r grants everything required does.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(required Role) bool {
	lvl := r.Level()
	return lvl > 0 && lvl >= required.Level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// User models a registered account.
type User struct {
	ID           int64     `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
