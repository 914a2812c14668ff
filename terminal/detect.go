package terminal

import (
	"os"
	"strings"

	"github.com/lixenwraith/gridterm/color"
)

// Detect determines the color capability from the environment. The core
// never inspects the environment itself; Terminal calls this once at
// construction and callers may override the result.
//
// Precedence: explicit GRIDTERM_COLOR override, then the NO_COLOR
// accessibility directive (rendered as greyscale), then true-color
// signals, then 256-color, falling back to the least capable modes when
// signals are absent or ambiguous.
func Detect() color.Capability {
	if forced, ok := parseCapability(os.Getenv("GRIDTERM_COLOR")); ok {
		return forced
	}

	if os.Getenv("NO_COLOR") != "" {
		return color.Greyscale
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return color.TrueColor
	}

	// Terminal-specific env vars set by known true-color emulators
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return color.TrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return color.TrueColor
	}
	if strings.Contains(term, "256color") {
		return color.Ansi256
	}
	if term == "" || term == "dumb" {
		return color.NoColor
	}

	return color.Ansi16
}

// parseCapability maps an explicit override string to a capability.
func parseCapability(s string) (color.Capability, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truecolor", "24bit":
		return color.TrueColor, true
	case "256", "ansi256", "256color":
		return color.Ansi256, true
	case "16", "ansi16", "standard":
		return color.Ansi16, true
	case "greyscale", "grayscale":
		return color.Greyscale, true
	case "none", "off":
		return color.NoColor, true
	}
	return 0, false
}
