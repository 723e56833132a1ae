// Package style provides shared colors and icons for CLI output.
package style

// Brand colors.
const (
	Iris   = "#8B5CF6"
	Slate  = "#667085"
	Green  = "#22A06B"
	Red    = "#D93025"
	Yellow = "#F59E0B"
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)
