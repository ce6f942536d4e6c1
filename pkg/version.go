// Package aire holds build information for the AIRE impact dashboard.
package aire

var (
	// Version of the application, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
