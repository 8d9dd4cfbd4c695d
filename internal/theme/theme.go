// Package theme provides the colour palettes used by the select screen.
package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colours used by the select screen.
type Theme struct {
	Name       string
	Light      bool
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text on Accent background
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	DisabledFg lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	ButtonBg   lipgloss.Color // segmented buttons
	ButtonFg   lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	NordName            = "nord"
	GruvboxDarkName     = "gruvbox-dark"
	GruvboxLightName    = "gruvbox-light"
	CatppuccinMochaName = "catppuccin-mocha"
)

var registry = map[string]func() *Theme{
	DraculaName:         Dracula,
	DraculaLightName:    DraculaLight,
	NordName:            Nord,
	GruvboxDarkName:     GruvboxDark,
	GruvboxLightName:    GruvboxLight,
	CatppuccinMochaName: CatppuccinMocha,
}

// Dracula returns the Dracula theme.
func Dracula() *Theme {
	return &Theme{
		Name:       DraculaName,
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		Border:     lipgloss.Color("#6272A4"),
		BorderDim:  lipgloss.Color("#44475A"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		DisabledFg: lipgloss.Color("#44475A"),
		SuccessFg:  lipgloss.Color("#50FA7B"),
		WarnFg:     lipgloss.Color("#FFB86C"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		ButtonBg:   lipgloss.Color("#FF79C6"),
		ButtonFg:   lipgloss.Color("#282A36"),
	}
}

// DraculaLight returns the Dracula theme adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Name:       DraculaLightName,
		Light:      true,
		Accent:     lipgloss.Color("#c6dbe5"),
		AccentFg:   lipgloss.Color("#24292F"),
		Border:     lipgloss.Color("#D0D7DE"),
		BorderDim:  lipgloss.Color("#E8E8E8"),
		MutedFg:    lipgloss.Color("#6E7781"),
		TextFg:     lipgloss.Color("#24292F"),
		DisabledFg: lipgloss.Color("#B0B7BE"),
		SuccessFg:  lipgloss.Color("#059669"),
		WarnFg:     lipgloss.Color("#D97706"),
		ErrorFg:    lipgloss.Color("#DC2626"),
		ButtonBg:   lipgloss.Color("#DB2777"),
		ButtonFg:   lipgloss.Color("#FFFFFF"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Name:       NordName,
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		Border:     lipgloss.Color("#4C566A"),
		BorderDim:  lipgloss.Color("#434C5E"),
		MutedFg:    lipgloss.Color("#81A1C1"),
		TextFg:     lipgloss.Color("#E5E9F0"),
		DisabledFg: lipgloss.Color("#4C566A"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		ButtonBg:   lipgloss.Color("#B48EAD"),
		ButtonFg:   lipgloss.Color("#2E3440"),
	}
}

// GruvboxDark returns the Gruvbox dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Name:       GruvboxDarkName,
		Accent:     lipgloss.Color("#FABD2F"),
		AccentFg:   lipgloss.Color("#282828"),
		Border:     lipgloss.Color("#504945"),
		BorderDim:  lipgloss.Color("#3C3836"),
		MutedFg:    lipgloss.Color("#928374"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		DisabledFg: lipgloss.Color("#665C54"),
		SuccessFg:  lipgloss.Color("#B8BB26"),
		WarnFg:     lipgloss.Color("#FE8019"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		ButtonBg:   lipgloss.Color("#D3869B"),
		ButtonFg:   lipgloss.Color("#282828"),
	}
}

// GruvboxLight returns the Gruvbox light theme.
func GruvboxLight() *Theme {
	return &Theme{
		Name:       GruvboxLightName,
		Light:      true,
		Accent:     lipgloss.Color("#D79921"),
		AccentFg:   lipgloss.Color("#FBF1C7"),
		Border:     lipgloss.Color("#D5C4A1"),
		BorderDim:  lipgloss.Color("#C0B58A"),
		MutedFg:    lipgloss.Color("#7C6F64"),
		TextFg:     lipgloss.Color("#3C3836"),
		DisabledFg: lipgloss.Color("#BDAE93"),
		SuccessFg:  lipgloss.Color("#79740E"),
		WarnFg:     lipgloss.Color("#AF3A03"),
		ErrorFg:    lipgloss.Color("#9D0006"),
		ButtonBg:   lipgloss.Color("#B16286"),
		ButtonFg:   lipgloss.Color("#FBF1C7"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme.
func CatppuccinMocha() *Theme {
	return &Theme{
		Name:       CatppuccinMochaName,
		Accent:     lipgloss.Color("#B4BEFE"),
		AccentFg:   lipgloss.Color("#1E1E2E"),
		Border:     lipgloss.Color("#45475A"),
		BorderDim:  lipgloss.Color("#313244"),
		MutedFg:    lipgloss.Color("#6C7086"),
		TextFg:     lipgloss.Color("#CDD6F4"),
		DisabledFg: lipgloss.Color("#45475A"),
		SuccessFg:  lipgloss.Color("#A6E3A1"),
		WarnFg:     lipgloss.Color("#F9E2AF"),
		ErrorFg:    lipgloss.Color("#F38BA8"),
		ButtonBg:   lipgloss.Color("#F5C2E7"),
		ButtonFg:   lipgloss.Color("#1E1E2E"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	if fn, ok := registry[NormalizeName(name)]; ok {
		return fn()
	}
	return Dracula()
}

// NormalizeName returns the canonical theme name, or "" if it is unknown.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := registry[name]; ok {
		return name
	}
	return ""
}

// AvailableThemes returns the sorted theme names.
func AvailableThemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect picks the default theme for the terminal background.
func Detect() string {
	if lipgloss.HasDarkBackground() {
		return DraculaName
	}
	return DraculaLightName
}
