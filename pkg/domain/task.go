package domain

import (
	"fmt"
	"strings"
)

// Task is the command carried by a packet.
type Task uint8

const (
	// TaskEnable announces that the sender became Enabled.
	TaskEnable Task = iota + 1
	// TaskStandby announces that the sender was switched off by the user.
	TaskStandby
	// TaskDisable announces that the sender lost all support and cascaded off.
	TaskDisable
	// TaskReachable asks whether the receiver is still supported by an
	// enabled path. It never mutates state.
	TaskReachable
)

func (t Task) String() string {
	switch t {
	case TaskEnable:
		return TaskNameEnable
	case TaskStandby:
		return TaskNameStandby
	case TaskDisable:
		return TaskNameDisable
	case TaskReachable:
		return TaskNameReachable
	}
	return fmt.Sprintf("Task(%d)", uint8(t))
}

// IsQuery reports whether the task expects a boolean answer.
// Queries are the tasks whose name ends with a question mark.
func (t Task) IsQuery() bool {
	return strings.HasSuffix(t.String(), "?")
}
