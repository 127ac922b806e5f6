// Package runtime drives the ability tree of one class.
//
// A Tree owns the wired grid, the state of every node and the ledger. A
// click runs a route: the clicked node changes state and broadcasts a packet
// through its ports, junctions relay it, and every node that may have lost
// its support asks its imports, through the same network, whether it is still
// connected to the root. Nodes that are not get disabled and pass the news
// on. The whole cascade settles before Click returns.
package runtime
