// Package schema decodes and validates ability catalogs.
//
// Catalog documents arrive as raw maps from YAML, JSON, TOML or Loam
// frontmatter. Normalize resolves the accepted field aliases (import/imports,
// display.row, archetype.req, ...), Check validates field types with a small
// type system, and DecodeAbility/DecodeClass/DecodeCatalog produce domain
// values through mapstructure with weak typing, so 1, 1.0 and
// json.Number("1") all decode to the same cost.
//
//	class, err := schema.DecodeClass("warrior", raw)
//	if err != nil {
//	    // every failure is a *ValidationError inside an *AggregateError
//	}
//	if err := schema.Validate(class); err != nil {
//	    // duplicate names, negative costs, unknown root ...
//	}
package schema
