/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing ability catalogs.

It allows developers to define ability trees using a type-safe, fluent builder pattern
instead of relying on external YAML, JSON or TOML files. This is particularly useful for
generated catalogs, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/abilitree"
		"github.com/aretw0/abilitree/pkg/dsl"
	)

	func main() {
		b := dsl.New("starter")
		warrior := b.Class("warrior").Budget(6)

		warrior.Ability("Bash").At(1, 4).Cost(1)
		warrior.Ability("Charge").At(3, 4).Cost(1)

		// Link wires Bash -> Charge through the junction at [2,4] and
		// derives the draft Charge walks back.
		warrior.Link("Bash", "Charge", "S")

		loader, _ := b.Build()
		eng, _ := abilitree.New("", abilitree.WithLoader(loader))
		_ = eng
	}
*/
package dsl
