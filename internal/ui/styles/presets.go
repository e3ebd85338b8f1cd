package styles

// Preset represents a complete color theme.
type Preset struct {
	Name   string
	Colors map[ColorToken]string
}

// Presets contains the built-in themes keyed by config name.
var Presets = map[string]Preset{
	"dark":  DarkPreset,
	"light": LightPreset,
}

// DarkPreset is the default theme.
var DarkPreset = Preset{
	Name: "dark",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",
		TokenStatusInfo:    "#54A0FF",

		TokenSelectionFg: "#FFFFFF",
		TokenSelectionBg: "#1A5276",

		TokenCategoryHeader: "#CBA6F7",
		TokenVariableName:   "#94E2D5",
		TokenDirty:          "#FAB387",
	},
}

// LightPreset is the light theme toggled with ctrl+t.
var LightPreset = Preset{
	Name: "light",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#2D3436",
		TokenTextSecondary: "#4C4F69",
		TokenTextMuted:     "#9CA0B0",

		TokenBorderDefault: "#9CA0B0",
		TokenBorderFocus:   "#1E66F5",

		TokenStatusSuccess: "#40A02B",
		TokenStatusWarning: "#DF8E1D",
		TokenStatusError:   "#D20F39",
		TokenStatusInfo:    "#1E66F5",

		TokenSelectionFg: "#FFFFFF",
		TokenSelectionBg: "#3498DB",

		TokenCategoryHeader: "#8839EF",
		TokenVariableName:   "#179299",
		TokenDirty:          "#FE640B",
	},
}
