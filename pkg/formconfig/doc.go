// Package formconfig defines the declarative form document: field structure,
// per-language translation bundles, conditional visibility rules, and the
// submit/redirect endpoints. Documents load from files, fs.FS entries, or
// URLs in JSON or YAML, and validate structurally on load.
//
// Display text never lives on a FieldSpec; it is looked up in the active
// language's Translation by field id. A field missing from a bundle is
// skipped by renderers, which Problems reports and strict validation
// rejects.
package formconfig
