package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAbility is returned when a click names an ability that does not exist.
var ErrUnknownAbility = errors.New("unknown ability")

// ErrUnknownClass is returned when an operation names a class missing from the catalog.
var ErrUnknownClass = errors.New("unknown class")

// ErrBusy is returned when a click arrives while another click's cascade is still running.
var ErrBusy = errors.New("another action is in progress")

// ErrActionRejected is matched by every *ActionRejectedError.
var ErrActionRejected = errors.New("action rejected")

// ErrProtocolMisuse is matched by every *ProtocolMisuseError.
var ErrProtocolMisuse = errors.New("protocol misuse")

// RejectReason is the structured cause of a rejected click.
type RejectReason string

const (
	RejectLocked    RejectReason = "locked"
	RejectDisabled  RejectReason = "disabled"
	RejectRequired  RejectReason = "required"
	RejectBudget    RejectReason = "budget"
	RejectArchetype RejectReason = "archetype"
)

// ActionRejectedError reports a click whose preconditions did not hold.
// No state was mutated.
type ActionRejectedError struct {
	Ability string
	Reason  RejectReason
	Detail  string
}

func (e *ActionRejectedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("<%s> %s: %s", e.Ability, ErrActionRejected, e.Reason)
	}
	return fmt.Sprintf("<%s> %s: %s", e.Ability, ErrActionRejected, e.Detail)
}

// Is makes errors.Is(err, ErrActionRejected) true.
func (e *ActionRejectedError) Is(target error) bool {
	return target == ErrActionRejected
}

// RejectionReason extracts the reason of a rejected action, if err is one.
func RejectionReason(err error) (RejectReason, bool) {
	var rej *ActionRejectedError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}

// ViolationKind classifies a catalog integrity problem detected at build time.
type ViolationKind string

const (
	ViolationRebind           ViolationKind = "rebind"
	ViolationInvalidDirection ViolationKind = "invalid_direction"
	ViolationNodeCollision    ViolationKind = "node_collision"
	ViolationDraftIntoNode    ViolationKind = "draft_into_node"
	ViolationUnknownName      ViolationKind = "unknown_name"
	ViolationUnwired          ViolationKind = "unwired"
	ViolationRoot             ViolationKind = "root"
)

// InvariantViolation is a catalog integrity problem. It is logged and
// collected; the first established value is kept and execution continues.
type InvariantViolation struct {
	Kind     ViolationKind
	Ability  string
	Position Position
	Detail   string
}

func (v InvariantViolation) Error() string {
	var sb strings.Builder
	sb.WriteString(string(v.Kind))
	if v.Ability != "" {
		fmt.Fprintf(&sb, " <%s>", v.Ability)
	}
	fmt.Fprintf(&sb, " at %s", v.Position)
	if v.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(v.Detail)
	}
	return sb.String()
}

// ProtocolMisuseError is a programming error detected while routing a packet,
// such as an unrecognised task. It aborts the current action.
type ProtocolMisuseError struct {
	Task   Task
	Node   string
	Detail string
}

func (e *ProtocolMisuseError) Error() string {
	return fmt.Sprintf("%s: <%s> task %s: %s", ErrProtocolMisuse, e.Node, e.Task, e.Detail)
}

// Is makes errors.Is(err, ErrProtocolMisuse) true.
func (e *ProtocolMisuseError) Is(target error) bool {
	return target == ErrProtocolMisuse
}
