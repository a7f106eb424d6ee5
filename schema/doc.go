// Package schema declares and validates dimension schemas for
// confidence values.
//
// A Schema names the dimension identifiers a confidence value may carry,
// which of those are required, and the shared numeric range. Schemas can
// inherit from one another by name; the Registry resolves inheritance
// chains lazily and guards against cycles.
//
// Malformed schemas and broken registrations are hard errors. Checking a
// dimension mapping against a schema is soft: Validate never fails on
// data shape, it returns a ValidationResult listing every violation
// found in one pass.
//
// Schema definitions can also be loaded from YAML files, and a Watcher
// can keep a registry in sync with definition files on disk.
package schema
