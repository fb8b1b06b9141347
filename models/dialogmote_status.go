package models

import (
	"time"

	"github.com/hashicorp/go-set/v2"
)

type DialogmoteStatus string

const (
	DialogmoteStatusInvited     DialogmoteStatus = "INVITED"
	DialogmoteStatusRescheduled DialogmoteStatus = "RESCHEDULED"
	DialogmoteStatusCancelled   DialogmoteStatus = "CANCELLED"
	DialogmoteStatusFinalized   DialogmoteStatus = "FINALIZED"
	DialogmoteStatusClosed      DialogmoteStatus = "CLOSED"
	DialogmoteStatusUnknown     DialogmoteStatus = "UNKNOWN"
)

func DialogmoteStatusFrom(s string) DialogmoteStatus {
	switch DialogmoteStatus(s) {
	case DialogmoteStatusInvited, DialogmoteStatusRescheduled, DialogmoteStatusCancelled,
		DialogmoteStatusFinalized, DialogmoteStatusClosed:
		return DialogmoteStatus(s)
	}
	return DialogmoteStatusUnknown
}

// OpenDialogmoteStatuses are the statuses from which a dialogmote can still move.
var OpenDialogmoteStatuses = set.From([]DialogmoteStatus{
	DialogmoteStatusInvited,
	DialogmoteStatusRescheduled,
})

var dialogmoteTransitions = map[DialogmoteStatus]*set.Set[DialogmoteStatus]{
	DialogmoteStatusInvited: set.From([]DialogmoteStatus{
		DialogmoteStatusRescheduled,
		DialogmoteStatusCancelled,
		DialogmoteStatusFinalized,
		DialogmoteStatusClosed,
	}),
	DialogmoteStatusRescheduled: set.From([]DialogmoteStatus{
		DialogmoteStatusRescheduled,
		DialogmoteStatusCancelled,
		DialogmoteStatusFinalized,
		DialogmoteStatusClosed,
	}),
}

func (s DialogmoteStatus) IsOpen() bool {
	return OpenDialogmoteStatuses.Contains(s)
}

// ValidateTransition is the whole lifecycle of a dialogmote. It has no side effect.
func ValidateTransition(from, to DialogmoteStatus) error {
	allowed, ok := dialogmoteTransitions[from]
	if !ok || !allowed.Contains(to) {
		return TransitionError{From: from, To: to}
	}
	return nil
}

// ValidateClose checks the extra condition of the automatic closing: the current tid of the
// dialogmote must be strictly before the cutoff.
func ValidateClose(dialogmote Dialogmote, cutoff time.Time) error {
	if err := ValidateTransition(dialogmote.Status, DialogmoteStatusClosed); err != nil {
		return err
	}
	current, ok := dialogmote.CurrentTidSted()
	if !ok || !current.Tid.Before(cutoff) {
		return ErrDialogmoteNotOutdated
	}
	return nil
}
