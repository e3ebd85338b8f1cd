package templates

import (
	"embed"
	"io/fs"
)

// builtinTemplates embeds the built-in template tables.
// The structure is:
//   - builtin/<template-id>.yaml
//
//go:embed builtin
var builtinTemplates embed.FS

// BuiltinFS returns the embedded filesystem containing the built-in template tables.
// This is used by the template service to populate the catalog.
func BuiltinFS() fs.FS {
	return builtinTemplates
}
