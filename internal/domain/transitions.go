package domain

import "fmt"

// TransitionError reports a rejected status change.
type TransitionError struct {
	From TicketStatus
	To   TicketStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// allowedTransitions is the explicit lifecycle state machine. Any active
// status may move between the working and blocked states or be resolved;
// a resolved ticket may only advance to verified; verified is terminal.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:        {TicketStatusInProgress, TicketStatusWaitingPart, TicketStatusVendor, TicketStatusResolved},
	TicketStatusInProgress:  {TicketStatusInProgress, TicketStatusWaitingPart, TicketStatusVendor, TicketStatusResolved},
	TicketStatusWaitingPart: {TicketStatusInProgress, TicketStatusWaitingPart, TicketStatusVendor, TicketStatusResolved},
	TicketStatusVendor:      {TicketStatusInProgress, TicketStatusWaitingPart, TicketStatusVendor, TicketStatusResolved},
	TicketStatusResolved:    {TicketStatusVerified},
	TicketStatusVerified:    {},
}

// CanTransition reports whether the state machine permits the change.
func CanTransition(from, to TicketStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a TransitionError for disallowed changes.
func ValidateTransition(from, to TicketStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
