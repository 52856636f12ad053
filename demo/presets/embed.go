package presets

import (
	"embed"
)

// FS provides the embedded default board presets.
//
//go:embed *.yaml
var FS embed.FS
