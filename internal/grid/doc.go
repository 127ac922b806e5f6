// Package grid turns ability path drafts into a connected graph of units laid
// out on a sparse 2-D surface.
//
// Every cell holds at most one unit: either a Node (an ability) or a Junction
// (a passive relay created lazily the first time a draft crosses an empty
// cell). Units are stored in an arena and addressed by UnitID; ports hold IDs,
// never pointers, so first-writer-wins binding is a plain equality check.
//
// Each port records the neighbour it is bound to and the set of node IDs
// reachable beyond it ("interested" nodes). Junctions re-derive the interested
// sets of their adjacent nodes every time they gain a binding, which keeps the
// sets correct no matter in which order the drafts are laid.
package grid
