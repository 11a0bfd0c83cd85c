package widgets

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// styleDoc is the YAML shape of a theme file. Colors are hex strings
// ("#rrggbb" or "#rrggbbaa"); absent fields keep the base style's value.
type styleDoc struct {
	Text        string   `yaml:"text"`
	Background  string   `yaml:"background"`
	Border      string   `yaml:"border"`
	Hover       string   `yaml:"hover"`
	Selected    string   `yaml:"selected"`
	Header      string   `yaml:"header"`
	Tooltip     string   `yaml:"tooltip"`
	TooltipText string   `yaml:"tooltip_text"`
	Scrollbar   string   `yaml:"scrollbar"`
	PaddingX    *float32 `yaml:"padding_x"`
	PaddingY    *float32 `yaml:"padding_y"`
	Scale       float32  `yaml:"scale"`
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex color into a packed
// RGBA value. A missing alpha component defaults to opaque.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("widgets: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("widgets: invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// LoadStyle merges a YAML theme document into base and returns the
// result. Fonts cannot be expressed in YAML, so base.Font carries over
// untouched.
func LoadStyle(base Style, data []byte) (Style, error) {
	var doc styleDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return base, fmt.Errorf("widgets: parse theme: %w", err)
	}

	set := func(dst *uint32, src string) error {
		if src == "" {
			return nil
		}
		c, err := ParseColor(src)
		if err != nil {
			return err
		}
		*dst = c
		return nil
	}

	s := base
	for _, f := range []struct {
		dst *uint32
		src string
	}{
		{&s.TextColor, doc.Text},
		{&s.BackgroundColor, doc.Background},
		{&s.BorderColor, doc.Border},
		{&s.HoverColor, doc.Hover},
		{&s.SelectedColor, doc.Selected},
		{&s.HeaderColor, doc.Header},
		{&s.TooltipColor, doc.Tooltip},
		{&s.TooltipTextColor, doc.TooltipText},
		{&s.ScrollbarColor, doc.Scrollbar},
	} {
		if err := set(f.dst, f.src); err != nil {
			return base, err
		}
	}
	// Padding fields are pointers so an explicit zero is distinguishable
	// from an absent entry.
	if doc.PaddingX != nil {
		s.Padding.X = *doc.PaddingX
	}
	if doc.PaddingY != nil {
		s.Padding.Y = *doc.PaddingY
	}
	if doc.Scale > 0 {
		s.Scale = doc.Scale
	}
	return s, nil
}

// LoadStyleFile reads a YAML theme file and merges it into base.
func LoadStyleFile(base Style, path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("widgets: read theme: %w", err)
	}
	return LoadStyle(base, data)
}
