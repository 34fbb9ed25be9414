// Package render provides color themes and markdown rendering for the terminal.
package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the terminal interface
type Theme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Glamour is the glamour standard style matching this palette
	Glamour string
}

// DefaultThemeName is used when the configured theme is unknown
const DefaultThemeName = "tokyonight"

var themes = map[string]Theme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",
		Surface:     lipgloss.Color("#24283b"),
		Border:      lipgloss.Color("#414868"),
		Primary:     lipgloss.Color("#7aa2f7"),
		Success:     lipgloss.Color("#9ece6a"),
		Warning:     lipgloss.Color("#e0af68"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
		Glamour:     "dark",
	},
	"flap": {
		Name:        "flap",
		Description: "Split-flap - amber characters on black",
		Surface:     lipgloss.Color("#111111"),
		Border:      lipgloss.Color("#3a3a3a"),
		Primary:     lipgloss.Color("#ffb000"),
		Success:     lipgloss.Color("#d7d7d7"),
		Warning:     lipgloss.Color("#ffd75f"),
		Error:       lipgloss.Color("#ff5f5f"),
		Text:        lipgloss.Color("#f0f0f0"),
		TextDim:     lipgloss.Color("#8a8a8a"),
		TextMute:    lipgloss.Color("#4e4e4e"),
		Glamour:     "dark",
	},
	"nord": {
		Name:        "nord",
		Description: "Nord - arctic, cool tones",
		Surface:     lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		Primary:     lipgloss.Color("#88c0d0"),
		Success:     lipgloss.Color("#a3be8c"),
		Warning:     lipgloss.Color("#ebcb8b"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
		TextMute:    lipgloss.Color("#4c566a"),
		Glamour:     "dark",
	},
	"paper": {
		Name:        "paper",
		Description: "Paper - light background",
		Surface:     lipgloss.Color("#f2f2f2"),
		Border:      lipgloss.Color("#b0b0b0"),
		Primary:     lipgloss.Color("#005faf"),
		Success:     lipgloss.Color("#008700"),
		Warning:     lipgloss.Color("#af8700"),
		Error:       lipgloss.Color("#d70000"),
		Text:        lipgloss.Color("#1c1c1c"),
		TextDim:     lipgloss.Color("#626262"),
		TextMute:    lipgloss.Color("#a8a8a8"),
		Glamour:     "light",
	},
}

var (
	mu      sync.RWMutex
	current = themes[DefaultThemeName]
)

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetTheme activates a theme by name. Unknown names leave the theme unchanged.
func SetTheme(name string) bool {
	theme, ok := ThemeByName(name)
	if !ok {
		return false
	}
	mu.Lock()
	current = theme
	mu.Unlock()
	return true
}

// ThemeByName looks up a theme
func ThemeByName(name string) (Theme, bool) {
	theme, ok := themes[name]
	return theme, ok
}

// ThemeNames returns the available theme names, sorted
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
