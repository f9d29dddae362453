package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleManager  UserRole = "manager"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleManager:
		return true
	}
	return false
}

// IsCustomer gates booking creation and ownership-scoped reads.
func (r UserRole) IsCustomer() bool {
	return r == RoleCustomer
}

// CanManageCatalog gates movie and showtime mutations plus booking administration.
func (r UserRole) CanManageCatalog() bool {
	return r == RoleStaff || r == RoleManager
}

// CanManageUsers gates account administration.
func (r UserRole) CanManageUsers() bool {
	return r == RoleManager
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}
