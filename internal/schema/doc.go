// Package schema implements the data model for display schemas and the
// in-memory registry that manages them.
//
// # Core Types
//
// Variable is a single named display field with English and Chinese labels
// and a row-count hint for multi-line input.
//
// Schema is a named record holding four page-level fields and six ordered
// Variable lists, one per Category. The set of categories is closed; code
// that needs to visit every list iterates Categories rather than naming the
// fields one by one.
//
// Registry maps schema names to schemas. Expected outcomes (name collisions,
// unknown names) are reported through boolean results instead of errors so
// callers can render feedback without error plumbing.
//
// # Wire Format
//
// Document and SchemaDocument describe the exchanged JSON shape. Each
// variable is written as a single-key object keyed by its name:
//
//	{"sku": {"en": "SKU", "cn": "库存单位", "rows": 1}}
//
// Parse converts a decoded JSON value back into a Schema, applying the field
// defaults of the format. Registry.ImportAll is best effort: entries that
// fail to parse are skipped and listed in the returned ImportReport. A
// variable that repeats a name within its list is dropped and reported, and
// the rest of its schema is kept.
//
// The registry is not safe for concurrent use. Callers that add background
// work (timers, file watchers) must funnel mutations through one goroutine.
package schema
