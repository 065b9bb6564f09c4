package display

import "fmt"

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Theme names a board color scheme.
type Theme string

const (
	ThemeOff   Theme = "off"
	ThemeBrown Theme = "brown"
	ThemeGreen Theme = "green"
	ThemeGray  Theme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	markBg  string
	white   string
	black   string
	reset   string
}

var themes = map[Theme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		markBg:  "\033[48;5;186m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   Reset,
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m",
		darkBg:  "\033[48;5;22m",
		markBg:  "\033[48;5;186m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   Reset,
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m",
		darkBg:  "\033[48;5;240m",
		markBg:  "\033[48;5;186m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   Reset,
	},
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if _, ok := themes[t]; !ok {
		return "", fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", s)
	}
	return t, nil
}

// Colorize wraps text in the given code unless colors are off.
func Colorize(on bool, code, text string) string {
	if !on {
		return text
	}
	return code + text + Reset
}

// Prompt returns a colored prompt string
func Prompt(on bool, text string) string {
	if !on {
		return text + " > "
	}
	return Yellow + text + " > " + Reset
}
