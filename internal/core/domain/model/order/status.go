package order

import (
	"fmt"
	"strings"

	"foodbot/internal/pkg/errs"
)

// Status is the tracking state of a persisted order.
//
// Lifecycle (only the first arrow is driven by this service):
//
//	(finalize) ──> InProgress ──> InTransit ──> Delivered
//	                   │              │
//	                   └──────────────┴───────> Cancelled
//
// The zero value is Unknown and is never persisted.
type Status string

const (
	// Unknown represents a missing or unparseable status.
	Unknown Status = ""

	// InProgress is written by the finalizer together with the order's line items.
	InProgress Status = "in progress"

	// InTransit means the order left the kitchen.
	InTransit Status = "in transit"

	// Delivered is terminal.
	Delivered Status = "delivered"

	// Cancelled is terminal.
	Cancelled Status = "cancelled"
)

// validStatuses lists every status that may appear in the tracking table.
func validStatuses() []Status {
	return []Status{InProgress, InTransit, Delivered, Cancelled}
}

// ParseStatus converts stored tracking text into a Status. Matching ignores
// case and surrounding whitespace, since the table is also edited by hand.
//
// Example:
//
//	s, err := order.ParseStatus("In Progress")
//	// s == order.InProgress
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(raw)))
	if err := candidate.Validate(); err != nil {
		return Unknown, err
	}
	return candidate, nil
}

// Validate checks that s is one of the known statuses.
func (s Status) Validate() error {
	for _, valid := range validStatuses() {
		if s == valid {
			return nil
		}
	}

	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

// IsTerminal reports whether no further transition is expected.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// String returns the stored text, or "unknown" for the zero value.
func (s Status) String() string {
	if s == Unknown {
		return "unknown"
	}
	return string(s)
}
