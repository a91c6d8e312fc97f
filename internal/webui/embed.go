package webui

import "embed"

// assetsFS holds the embedded templates and static files (HTML, CSS, JS).
//
//go:embed templates static
var assetsFS embed.FS
