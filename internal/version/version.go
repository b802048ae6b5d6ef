// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API with rate limiting and metrics, YAML config, site presets
// 0.2.0 - JPL Horizons ephemeris with local fallback, --ephem flag
// 0.1.0 - Initial release: local Meeus ephemeris, table/JSON output, TUI site picker
