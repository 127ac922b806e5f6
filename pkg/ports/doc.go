/*
Package ports defines the driven ports (interfaces) for the abilitree engine.

These interfaces decouple the core propagation logic from external
implementations, allowing the engine to work with various catalog sources and
resource books.

# Key Interfaces

  - CatalogLoader: Responsible for loading class and ability definitions (e.g., from Loam, a single file or Memory).
  - Watchable: Optional change notifications for loaders backed by live storage.
  - Ledger: The ability-point budget and archetype counters charged and refunded by activation changes.
*/
package ports
