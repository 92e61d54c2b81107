// AngelaMos | 2026
// policy.go

package policy

import (
	"fmt"

	"github.com/bakerycrew/crew-backend/internal/core"
)

const (
	RoleUser      = "user"
	RoleManager   = "manager"
	RoleDeveloper = "developer"
)

const (
	ShiftFirst  = "1st"
	ShiftSecond = "2nd"
	ShiftNight  = "night"
)

// Actor is the caller of a request. Shift and ManagerID are empty when
// unset.
type Actor struct {
	ID        string
	Role      string
	Shift     string
	ManagerID string
}

func (a Actor) Is(role string) bool {
	return a.Role == role
}

// Subject is a user record being acted upon.
type Subject struct {
	ID    string
	Role  string
	Shift string
}

// Owned is a shift-scoped record with a creator: an event or a
// donation. Donations carry no shift.
type Owned struct {
	ID        string
	CreatedBy string
	Shift     string
}

type Reason string

const (
	ReasonUserDelete     Reason = "USER_DELETE_DENIED"
	ReasonUserApprove    Reason = "USER_APPROVE_DENIED"
	ReasonRoleChange     Reason = "ROLE_CHANGE_DENIED"
	ReasonMessageUser    Reason = "MESSAGE_OUTSIDE_MANAGER"
	ReasonMessageManager Reason = "MESSAGE_OUTSIDE_SHIFT"
	ReasonEventCreate    Reason = "EVENT_CREATE_DENIED"
	ReasonEventShift     Reason = "EVENT_SHIFT_MISMATCH"
	ReasonApplyRole      Reason = "APPLY_ROLE_DENIED"
	ReasonApplyShift     Reason = "APPLY_SHIFT_MISMATCH"
	ReasonEventDelete    Reason = "EVENT_DELETE_DENIED"
	ReasonDonationCreate Reason = "DONATION_CREATE_DENIED"
	ReasonDonationDelete Reason = "DONATION_DELETE_DENIED"
	ReasonUnknownRequest Reason = "UNKNOWN_REQUEST"
)

// Denial is a terminal authorization failure. It unwraps to
// core.ErrForbidden.
type Denial struct {
	Reason  Reason
	Message string
}

func (d *Denial) Error() string {
	return fmt.Sprintf("%s: %s", d.Reason, d.Message)
}

func (d *Denial) Unwrap() error {
	return core.ErrForbidden
}

func deny(reason Reason, message string) error {
	return &Denial{Reason: reason, Message: message}
}

func CanDeleteUser(actor Actor, target Subject) error {
	switch actor.Role {
	case RoleDeveloper:
		return nil
	case RoleManager:
		if target.Role == RoleUser && target.Shift == actor.Shift {
			return nil
		}
	case RoleUser:
		if target.ID == actor.ID {
			return nil
		}
	}

	return deny(
		ReasonUserDelete,
		"Access denied. You do not have permission to delete this user.",
	)
}

func CanApproveUser(actor Actor) error {
	if actor.Is(RoleManager) || actor.Is(RoleDeveloper) {
		return nil
	}
	return deny(ReasonUserApprove, "Access denied. Insufficient privileges.")
}

// CanChangeRole covers both promotion and demotion. Whether the target
// currently holds the source role is an eligibility question answered
// by the store, not a permission.
func CanChangeRole(actor Actor) error {
	if actor.Is(RoleDeveloper) {
		return nil
	}
	return deny(
		ReasonRoleChange,
		"Access denied. Only developers can change roles.",
	)
}

func CanMessage(sender Actor, recipient Subject) error {
	switch sender.Role {
	case RoleUser:
		if sender.ManagerID == "" || recipient.ID != sender.ManagerID {
			return deny(
				ReasonMessageUser,
				"Users can only message their assigned manager.",
			)
		}
	case RoleManager:
		if recipient.Role != RoleUser || recipient.Shift != sender.Shift {
			return deny(
				ReasonMessageManager,
				"Managers can only message users in their shift.",
			)
		}
	}

	return nil
}

func CanCreateEvent(actor Actor, shift string) error {
	switch actor.Role {
	case RoleDeveloper:
		return nil
	case RoleManager:
		if shift == actor.Shift {
			return nil
		}
		return deny(
			ReasonEventShift,
			"Managers can only create events for their own shift.",
		)
	}

	return deny(
		ReasonEventCreate,
		"Access denied. Only managers or developers can create events.",
	)
}

func CanApplyToEvent(actor Actor, event Owned) error {
	if !actor.Is(RoleUser) {
		return deny(ReasonApplyRole, "Only users can apply to events")
	}

	if actor.Shift != event.Shift {
		return deny(
			ReasonApplyShift,
			"Users can only apply to events from their shift",
		)
	}

	return nil
}

func CanDeleteEvent(actor Actor, event Owned) error {
	switch actor.Role {
	case RoleDeveloper:
		return nil
	case RoleManager:
		if actor.ID == event.CreatedBy || actor.Shift == event.Shift {
			return nil
		}
	}

	return deny(ReasonEventDelete, "Access denied")
}

func CanCreateDonation(actor Actor) error {
	if actor.Is(RoleManager) || actor.Is(RoleDeveloper) {
		return nil
	}
	return deny(
		ReasonDonationCreate,
		"Only managers or admins can create donations",
	)
}

func CanDeleteDonation(actor Actor, donation Owned) error {
	if actor.Is(RoleDeveloper) || actor.ID == donation.CreatedBy {
		return nil
	}
	return deny(ReasonDonationDelete, "Access denied")
}
