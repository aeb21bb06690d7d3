package enum

import (
	"database/sql/driver"
	"fmt"
)

// UserRole is the authorization level attached to a caller identity
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
	UserRoleGuest UserRole = "guest"
)

// ParseUserRole accepts the wire value of a role
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleUser, UserRoleGuest:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

// CanUseLedger reports whether the role may create receipts, record payments and manage the catalog
func (r UserRole) CanUseLedger() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

func (r UserRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = UserRoleGuest
	case string:
		*r = UserRole(v)
	case []byte:
		*r = UserRole(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRole", value)
	}
	return nil
}
