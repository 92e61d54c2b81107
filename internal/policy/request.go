// AngelaMos | 2026
// request.go

package policy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bakerycrew/crew-backend/internal/core"
)

type Resource string

const (
	ResourceUser     Resource = "user"
	ResourceMessage  Resource = "message"
	ResourceEvent    Resource = "event"
	ResourceDonation Resource = "donation"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionPromote Action = "promote"
	ActionDemote  Action = "demote"
	ActionSend    Action = "send"
	ActionApply   Action = "apply"
)

// Request names one decision. Only the target field relevant to the
// resource and action is read: User for user and message rules, Record
// for event and donation rules, Shift for event creation.
type Request struct {
	Resource Resource
	Action   Action
	User     Subject
	Record   Owned
	Shift    string
}

func Authorize(actor Actor, req Request) error {
	switch req.Resource {
	case ResourceUser:
		switch req.Action {
		case ActionDelete:
			return CanDeleteUser(actor, req.User)
		case ActionApprove:
			return CanApproveUser(actor)
		case ActionPromote, ActionDemote:
			return CanChangeRole(actor)
		}
	case ResourceMessage:
		if req.Action == ActionSend {
			return CanMessage(actor, req.User)
		}
	case ResourceEvent:
		switch req.Action {
		case ActionCreate:
			return CanCreateEvent(actor, req.Shift)
		case ActionApply:
			return CanApplyToEvent(actor, req.Record)
		case ActionDelete:
			return CanDeleteEvent(actor, req.Record)
		}
	case ResourceDonation:
		switch req.Action {
		case ActionCreate:
			return CanCreateDonation(actor)
		case ActionDelete:
			return CanDeleteDonation(actor, req.Record)
		}
	}

	return deny(ReasonUnknownRequest, "Access denied")
}

// Check is Authorize with denials logged at debug level.
func Check(ctx context.Context, actor Actor, req Request) error {
	err := Authorize(actor, req)

	var denial *Denial
	if errors.As(err, &denial) {
		slog.DebugContext(ctx, "authorization denied",
			"actor_id", actor.ID,
			"role", actor.Role,
			"resource", string(req.Resource),
			"action", string(req.Action),
			"reason", string(denial.Reason),
		)
		core.AddSpanEvent(ctx, "authorization.denied",
			attribute.String("policy.resource", string(req.Resource)),
			attribute.String("policy.action", string(req.Action)),
			attribute.String("policy.reason", string(denial.Reason)),
		)
	}

	return err
}

// AsAppError converts a denial anywhere in err's chain into a 403
// response error carrying the reason code.
func AsAppError(err error) (*core.AppError, bool) {
	var denial *Denial
	if !errors.As(err, &denial) {
		return nil, false
	}

	return core.NewAppError(
		core.ErrForbidden,
		denial.Message,
		http.StatusForbidden,
		string(denial.Reason),
	), true
}
