package shared

import (
	"evcharge-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, validated once at the HTTP boundary
// and passed explicitly into every command. Commands never decode tokens.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     user.Role
}

var roleLevels = map[user.Role]int{
	user.RoleUser:     1,
	user.RoleOperator: 2,
	user.RoleAdmin:    3,
}

func (a Actor) HasRoleAtLeast(min user.Role) bool {
	al, ok := roleLevels[a.Role]
	ml, mok := roleLevels[min]
	return ok && mok && al >= ml
}

// CanManageStations gates station/slot administration and booking
// approval, confirmation and completion.
func (a Actor) CanManageStations() bool {
	return a.HasRoleAtLeast(user.RoleOperator)
}

func (a Actor) CanManageUsers() bool {
	return a.HasRoleAtLeast(user.RoleAdmin)
}

// DependencyPreview is the non-mutating count of entities a destructive
// station operation would touch, used to gate confirmation.
type DependencyPreview struct {
	BookingsCount int64 `json:"bookingsCount"`
	SlotsCount    int64 `json:"slotsCount"`
}

func (p DependencyPreview) HasDependencies() bool {
	return p.BookingsCount > 0 || p.SlotsCount > 0
}
