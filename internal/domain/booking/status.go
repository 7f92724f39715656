package booking

import (
	"fmt"

	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.Validation("invalid_status", fmt.Sprintf("unknown booking status %q", s))
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Parties
// ===============================

// Party is the role an actor plays on one booking. A user can in principle
// be both, so it is a bit set.
type Party uint8

const (
	PartyNone     Party = 0
	PartySeeker   Party = 1 << 0
	PartyProvider Party = 1 << 1
)

// ===============================
// State machine
// ===============================

type edge struct {
	from Status
	to   Status
}

// transitions lists every allowed edge with the parties that may take it.
var transitions = map[edge]Party{
	{StatusPending, StatusConfirmed}:   PartyProvider,
	{StatusPending, StatusCancelled}:   PartyProvider | PartySeeker,
	{StatusConfirmed, StatusCompleted}: PartyProvider,
	{StatusConfirmed, StatusCancelled}: PartySeeker,
}

// CheckTransition decides whether party may move a booking from one status
// to another. Checks run in a fixed order: party, terminal, edge, authority.
func CheckTransition(party Party, from, to Status) error {
	if party == PartyNone {
		return httperr.Forbidden("not_booking_party", "only the booking's seeker or provider can change it")
	}

	if from.Terminal() {
		return httperr.InvalidState(
			"terminal_status",
			fmt.Sprintf("booking is already %s", from),
		)
	}

	allowed, ok := transitions[edge{from, to}]
	if !ok {
		return httperr.InvalidState(
			"invalid_transition",
			fmt.Sprintf("cannot move booking from %s to %s", from, to),
		)
	}

	if allowed&party == 0 {
		return httperr.Forbidden(
			"transition_not_allowed",
			fmt.Sprintf("you are not allowed to move this booking from %s to %s", from, to),
		)
	}

	return nil
}
