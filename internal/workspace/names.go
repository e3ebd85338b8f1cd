package workspace

import (
	"path/filepath"
	"strings"
	"time"
)

// exportStamp is hour_minute_month_day_year, the layout of exported file names.
const exportStamp = "15_04_01_02_2006"

// DefaultExportFilename names a full export taken at now.
func DefaultExportFilename(now time.Time) string {
	return "schemas_" + now.Format(exportStamp) + ".json"
}

// SchemaExportFilename names a single-schema export taken at now. Path
// separators in name are replaced so the result stays a plain file name.
func SchemaExportFilename(name string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if safe == "" {
		safe = "schema"
	}
	return safe + "_" + now.Format(exportStamp) + ".json"
}
