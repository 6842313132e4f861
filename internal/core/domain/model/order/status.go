package order

import (
	"fmt"
	"strings"

	"salesorder/internal/pkg/errs"
)

// Status is the order lifecycle state.
//
//	Created ──┬──> Approved
//	          ├──> Rejected
//	          └──> InsufficientProducts ──┬──> Approved
//	                        ^             ├──> Rejected
//	                        └─────────────┘
//
// Approved and Rejected are final.
type Status int

const (
	Unknown Status = iota
	Created
	Approved
	Rejected
	InsufficientProducts
)

var statusNames = map[Status]string{
	Created:              "Created",
	Approved:             "Approved",
	Rejected:             "Rejected",
	InsufficientProducts: "InsufficientProducts",
}

var (
	ErrOrderIsAlreadyApproved = errs.NewValueIsInvalidError("order is already approved")
	ErrOrderIsRejected        = errs.NewValueIsInvalidError("order is rejected")
)

// ParseStatus accepts the names returned by String, case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsFinal reports whether no further action may change the status.
func (s Status) IsFinal() bool {
	return s == Approved || s == Rejected
}

// ValidateCanBeActioned checks the current status without performing a transition.
func (s Status) ValidateCanBeActioned() error {
	switch s {
	case Created, InsufficientProducts:
		return nil
	case Approved:
		return ErrOrderIsAlreadyApproved
	case Rejected:
		return ErrOrderIsRejected
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s orders cannot be actioned", s))
	}
}

// Action returns target if the transition from s is allowed.
func (s Status) Action(target Status) (Status, error) {
	if err := s.ValidateCanBeActioned(); err != nil {
		return Unknown, err
	}

	switch target {
	case Approved, Rejected, InsufficientProducts:
		return target, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid target status", target),
		)
	}
}
