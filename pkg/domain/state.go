package domain

import "fmt"

// NodeState is the activation state of an ability node.
// The lifecycle is Disabled -> Standby -> Enabled; locking is tracked
// separately and never changes the state itself.
type NodeState uint8

const (
	// Disabled nodes are unreachable and cannot be clicked.
	Disabled NodeState = iota
	// Standby nodes are reachable from an enabled import and may be enabled.
	Standby
	// Enabled nodes are active and have been charged to the ledger.
	Enabled
)

func (s NodeState) String() string {
	switch s {
	case Disabled:
		return StateNameDisabled
	case Standby:
		return StateNameStandby
	case Enabled:
		return StateNameEnabled
	}
	return fmt.Sprintf("NodeState(%d)", uint8(s))
}

// ParseNodeState converts a state name back into a NodeState.
func ParseNodeState(name string) (NodeState, error) {
	switch name {
	case StateNameDisabled:
		return Disabled, nil
	case StateNameStandby:
		return Standby, nil
	case StateNameEnabled:
		return Enabled, nil
	}
	return 0, fmt.Errorf("unknown node state %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s NodeState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *NodeState) UnmarshalText(text []byte) error {
	v, err := ParseNodeState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
