/*
Package domain contains the core domain models of the abilitree engine.

It defines the vocabulary shared by the runtime, the catalog adapters and the
presentation layers: ability definitions, grid geometry, node states, packet
tasks, lifecycle events and the error taxonomy. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Ability: the immutable, externally supplied definition of one unlockable ability.
  - Class: a named set of abilities sharing one grid, one root and one point budget.
  - Position / Direction: the sparse 2-D grid geometry and the compass steps of a path draft.
  - NodeState: the Disabled -> Standby -> Enabled activation lifecycle.
  - Task: the message kinds carried by packets (enable, standby, disable, reachable?).
  - Transition: a single applied state change, reported back to callers.
*/
package domain
