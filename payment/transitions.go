package payment

import (
	"fmt"
	"strings"
)

// Status is a string representing a payment lifecycle status.
type Status string

const (
	// Pending represents a payment that has been created but not yet authorized.
	Pending Status = "PENDING"
	// Authorized represents a payment whose funds are reserved with the gateway.
	Authorized Status = "AUTHORIZED"
	// Captured represents a payment whose funds have been captured.
	Captured Status = "CAPTURED"
	// Failed represents a payment that failed permanently.
	Failed Status = "FAILED"
	// Refunded represents a captured payment whose funds were returned.
	Refunded Status = "REFUNDED"
	// Voided represents a payment cancelled before capture.
	Voided Status = "VOIDED"
)

// Transitions represents the valid forward-transitions for each given status.
var Transitions = map[Status][]Status{
	Pending:    {Authorized, Captured, Failed, Voided},
	Authorized: {Captured, Voided, Failed},
	Captured:   {Refunded},
	Failed:     {},
	Refunded:   {},
	Voided:     {},
}

// GetValidTransitions returns valid transitions out of this status.
func (s Status) GetValidTransitions() []Status {
	return Transitions[s]
}

// IsTerminal returns true when no transition out of this status is allowed.
func (s Status) IsTerminal() bool {
	targets, ok := Transitions[s]
	return ok && len(targets) == 0
}

// IsSuccessful returns true for statuses where the gateway holds or has
// settled the funds.
func (s Status) IsSuccessful() bool {
	return s == Authorized || s == Captured
}

// IsRefundable returns true when a refund may be issued against the payment.
func (s Status) IsRefundable() bool {
	return s == Captured
}

// IsVoidable returns true when the payment may still be cancelled.
func (s Status) IsVoidable() bool {
	return s == Pending || s == Authorized
}

// CanTransition checks whether target is a valid transition out of this status.
// Self-transitions are never valid.
func (s Status) CanTransition(target Status) bool {
	for _, t := range Transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ValidateTransition checks a requested transition, returning a descriptive
// error for an unknown status or a disallowed transition.
func ValidateTransition(from, to Status) error {
	if _, ok := Transitions[from]; !ok {
		return fmt.Errorf("unknown payment status: %s", from)
	}
	if _, ok := Transitions[to]; !ok {
		return fmt.Errorf("unknown payment status: %s", to)
	}
	if from == to {
		return fmt.Errorf("payment status is already %s", from)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("transition from %s to %s is not allowed", from, to)
	}
	return nil
}

// ParseStatus parses a status string, case insensitively.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToUpper(v))
	if _, ok := Transitions[s]; !ok {
		return "", fmt.Errorf("unknown payment status: %s", v)
	}
	return s, nil
}

// GetAllValidTransitionSequences returns all valid transition sequences.
func GetAllValidTransitionSequences() [][]Status {
	return RecurseTransitionResolution(Pending, []Status{})
}

// RecurseTransitionResolution returns the list of valid transition paths that are
// possible for a given status.
func RecurseTransitionResolution(
	status Status,
	currentTree []Status,
) [][]Status {
	var (
		result      [][]Status
		updatedTree = append(currentTree, status)
	)
	possibleStatuses := status.GetValidTransitions()
	if len(possibleStatuses) == 0 {
		tempTree := make([]Status, len(updatedTree))
		copy(tempTree, updatedTree)
		result = append(result, tempTree)
		return result
	}
	for _, possibleStatus := range possibleStatuses {
		recursed := RecurseTransitionResolution(possibleStatus, updatedTree)
		result = append(result, recursed...)
	}
	return result
}
