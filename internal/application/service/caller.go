package service

import (
	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

// Caller is the authenticated identity behind a request and the role the
// store holds for it.
type Caller struct {
	UserID uuid.UUID
	Role   enum.UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == enum.UserRoleAdmin
}

func requireLedgerAccess(c Caller) error {
	if !c.Role.CanUseLedger() {
		return apperror.NewUnauthorizedError("this operation requires the user or admin role")
	}
	return nil
}

func requireAdmin(c Caller) error {
	if !c.IsAdmin() {
		return apperror.NewUnauthorizedError("this operation requires the admin role")
	}
	return nil
}
