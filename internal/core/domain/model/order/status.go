package order

import (
	"fmt"
	"strings"

	"kiosk/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Queued ──> InPreparation ──> Ready
//	   │                           ▲
//	   └───────────────────────────┘
//	        (fast path for simple items)
//
// Ready is terminal.
type Status int

const (
	// Unknown is the invalid zero value.
	Unknown Status = iota

	// Queued is the initial status; queued orders make up the serving order.
	Queued

	// InPreparation means staff started working on the order. Several orders
	// may be in preparation at the same time.
	InPreparation

	// Ready means the customer has been (or is being) told to pick the order up.
	Ready
)

var statusNames = map[Status]string{
	Queued:        "Queued",
	InPreparation: "InPreparation",
	Ready:         "Ready",
}

// ParseStatus accepts the names returned by String, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values, typically read from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Ready
}

// BeginPreparation returns InPreparation when s is Queued.
// Any other status, including InPreparation itself, is an invalid transition.
func (s Status) BeginPreparation() (Status, error) {
	if s != Queued {
		return Unknown, errs.NewInvalidTransitionError(s.String(), InPreparation.String())
	}
	return InPreparation, nil
}

// MarkReady returns Ready when s is Queued or InPreparation.
func (s Status) MarkReady() (Status, error) {
	if s != Queued && s != InPreparation {
		return Unknown, errs.NewInvalidTransitionError(s.String(), Ready.String())
	}
	return Ready, nil
}
