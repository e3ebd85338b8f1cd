// Package styles contains Lip Gloss style definitions for the dark and light
// editor themes.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenStatusInfo    ColorToken = "status.info"

	// Selection
	TokenSelectionFg ColorToken = "selection.fg"
	TokenSelectionBg ColorToken = "selection.bg"

	// Schema content
	TokenCategoryHeader ColorToken = "schema.category"
	TokenVariableName   ColorToken = "schema.variable"
	TokenDirty          ColorToken = "schema.dirty"
)

// AllTokens lists every token a preset must define.
var AllTokens = []ColorToken{
	TokenTextPrimary,
	TokenTextSecondary,
	TokenTextMuted,
	TokenBorderDefault,
	TokenBorderFocus,
	TokenStatusSuccess,
	TokenStatusWarning,
	TokenStatusError,
	TokenStatusInfo,
	TokenSelectionFg,
	TokenSelectionBg,
	TokenCategoryHeader,
	TokenVariableName,
	TokenDirty,
}
