/*
Package abilitree is a dependency propagation engine for ability trees.

Abilities sit on a sparse grid and are wired to each other through junction
cells. Unlocking an ability advances its dependents to standby; locking one
back disables every dependent that can no longer reach the root through some
other enabled chain. The engine runs each click as a self-contained route of
packets over the grid and returns every state change it caused.

# Concept

A catalog holds classes, each an independent tree with its own point budget.
Every ability is in one of three states:

  - disable: cannot be clicked.
  - standby: unlockable, a click enables it.
  - enable: unlocked, a click returns it to standby.

The ability without imports is the root and starts in standby.

# Key Features

  - Reachability-gated cascade: a node disables only when no enabled path to the root remains.
  - Hexagonal Architecture: the runtime is decoupled from catalog storage (file, Loam directory, Memory).
  - Strict Contracts: catalogs are validated on load and wiring problems are reported as violations.
  - Observability: lifecycle hooks for routes, transitions, queries and rejections.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/abilitree"
	)

	func main() {
		eng, err := abilitree.New("./catalogs/starter.yaml")
		if err != nil {
			log.Fatal(err)
		}

		out, err := eng.Click(context.Background(), "warrior", "Bash")
		if err != nil {
			log.Fatal(err)
		}
		for _, tr := range out.Transitions {
			fmt.Printf("%s: %s -> %s\n", tr.Ability, tr.From, tr.To)
		}
	}
*/
package abilitree
