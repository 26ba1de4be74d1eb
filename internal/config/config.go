package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/shotmark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Export holds defaults for flattened image output.
type Export struct {
	Shadow bool
	Format string // png or pdf
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	SaveDir     string
	FrameRate   int
	ClearOnLoad bool
	Notify      Notify
	Export      Export
	Themes      map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:     "", // Default to empty to allow fallback to Env/Default
		FrameRate: 60,
		Export:    Export{Format: "png"},
		Themes:    make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "frame_rate = %d\n", c.FrameRate)
	fmt.Fprintf(&sb, "clear_on_load = %v\n", c.ClearOnLoad)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "shadow = %v\n", c.Export.Shadow)
	if c.Export.Format != "" {
		fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	}
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
