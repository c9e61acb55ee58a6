// Package moderation owns the listing status machine:
// pending -> approved | rejected, with optional approved <-> rejected reversal.
package moderation

import (
	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Target is the status an action moves a listing to.
func (a Action) Target() domain.PropertyStatus {
	if a == ActionApprove {
		return domain.PropertyStatusApproved
	}
	return domain.PropertyStatusRejected
}

type Workflow struct {
	AllowReversal bool
}

func NewWorkflow(allowReversal bool) *Workflow {
	return &Workflow{AllowReversal: allowReversal}
}

// Authorize checks that actor may moderate at all.
func (w *Workflow) Authorize(actor *domain.User) error {
	if actor == nil {
		return apperrors.Unauthenticated("moderation.authorize", "sign in to moderate listings")
	}
	if !actor.IsAdmin() {
		return apperrors.Forbidden("moderation.authorize", "only admins can moderate listings")
	}
	return nil
}

// Transition returns the status after applying action to current and whether
// it differs from current. Repeating an action is a successful no-op.
func (w *Workflow) Transition(actor *domain.User, current domain.PropertyStatus, action Action) (domain.PropertyStatus, bool, error) {
	const op = "moderation.transition"
	if err := w.Authorize(actor); err != nil {
		return current, false, err
	}
	if action != ActionApprove && action != ActionReject {
		return current, false, apperrors.Validation(op, "unknown moderation action", map[string]string{"action": string(action)})
	}

	next := action.Target()
	switch current {
	case next:
		return current, false, nil
	case domain.PropertyStatusPending:
		return next, true, nil
	case domain.PropertyStatusApproved, domain.PropertyStatusRejected:
		if !w.AllowReversal {
			return current, false, apperrors.Validation(op,
				"listing was already "+string(current)+" and reversal is disabled", nil)
		}
		return next, true, nil
	}
	return current, false, apperrors.Validation(op, "listing has unknown status "+string(current), nil)
}
