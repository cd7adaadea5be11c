// Package styles defines the visual styling for sggit's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes. The definitions live in the embedded styles.yaml.
package styles

import (
	_ "embed"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

func init() {
	if err := LoadStyles(defaultStyles); err != nil {
		panic("embedded styles.yaml: " + err.Error())
	}
}

// LoadStyles replaces the registry with the styles defined in data.
func LoadStyles(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style, err := buildStyle(def, colors)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "style %s", name)
		}
		registry[name] = style
	}
	StyleRegistry = registry
	return nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if def.Foreground != "" {
		color, ok := colors[def.Foreground]
		if !ok {
			return style, errors.Newf(errors.ErrConfigInvalid, "unknown color %q", def.Foreground)
		}
		style = style.Foreground(color)
	}
	if def.Background != "" {
		color, ok := colors[def.Background]
		if !ok {
			return style, errors.Newf(errors.ErrConfigInvalid, "unknown color %q", def.Background)
		}
		style = style.Background(color)
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	return style, nil
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to s.
func Render(name, s string) string {
	return GetStyle(name).Render(s)
}
