// Package template implements the template catalog used to pre-populate
// schemas with a conventional set of variables.
//
// # Core Types
//
// Definition is the capability every template variant provides: a stable
// registry id, descriptive Metadata, the variables of each schema category
// and the page-level configuration. Table is the data-backed Definition
// produced by Builder; the built-in templates are Tables decoded from YAML.
//
// Registry maps template ids to factories. Every Create call returns a fresh
// Definition, so materialized schemas never share state with the catalog or
// with each other. Registering an id that is already bound replaces the
// factory in place.
//
// # Materialization
//
// ToSchema turns a Definition into a schema.Schema under a caller-chosen
// name. Preview returns the same content in wire shape without a name.
// Template-only attributes (Required, DefaultValue, ValidationRules) are not
// carried into the schema.
package template
