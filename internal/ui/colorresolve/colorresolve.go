// Package colorresolve parses the editor's color tag string format and
// renders it to lipgloss styles for the default terminal UI.
package colorresolve

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spec is a parsed color tag: a foreground, an optional background, or
// the request for no color at all (the terminal's own default).
type Spec struct {
	FG        string // 6-digit hex, e.g. "0055ff"; empty if unset
	BG        string // 6-digit hex; empty if unset
	IsDefault bool
}

// Parse reads a color tag string: `'#rgb'` (foreground only), `'#rgb|rgb'`
// (foreground|background), or `'x'` for the terminal default. Each r, g, b
// is exactly one hex digit, doubled to form a 6-digit color the way CSS's
// 3-digit shorthand does.
func Parse(tag string) (Spec, error) {
	if tag == "x" {
		return Spec{IsDefault: true}, nil
	}

	fg, bg, hasBG := splitTag(tag)

	fgHex, err := expandNibbles(fg)
	if err != nil {
		return Spec{}, fmt.Errorf("colorresolve: foreground %q: %w", tag, err)
	}

	spec := Spec{FG: fgHex}
	if hasBG {
		bgHex, err := expandNibbles(bg)
		if err != nil {
			return Spec{}, fmt.Errorf("colorresolve: background %q: %w", tag, err)
		}
		spec.BG = bgHex
	}
	return spec, nil
}

// splitTag separates "#rgb|rgb" into two "#rgb" halves (supplying the
// background's '#'), or returns tag unchanged as the sole foreground half
// when there is no '|'.
func splitTag(tag string) (fg, bg string, hasBG bool) {
	for i, r := range tag {
		if r == '|' {
			return tag[:i], "#" + tag[i+1:], true
		}
	}
	return tag, "", false
}

// expandNibbles validates and doubles a "#rgb" triple into a 6-digit hex
// string ("rrggbb", without the leading '#').
func expandNibbles(s string) (string, error) {
	if len(s) != 4 || s[0] != '#' {
		return "", fmt.Errorf("want '#rgb', got %q", s)
	}
	out := make([]byte, 0, 6)
	for _, c := range s[1:] {
		if !isHexDigit(c) {
			return "", fmt.Errorf("want a hex digit, got %q", c)
		}
		out = append(out, byte(c), byte(c))
	}
	return string(out), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Style renders tag as a lipgloss.Style, or the zero Style (terminal
// default colors throughout) if tag fails to parse.
func Style(tag string) lipgloss.Style {
	spec, err := Parse(tag)
	if err != nil || spec.IsDefault {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle()
	if spec.FG != "" {
		style = style.Foreground(lipgloss.Color("#" + spec.FG))
	}
	if spec.BG != "" {
		style = style.Background(lipgloss.Color("#" + spec.BG))
	}
	return style
}

// Resolver looks up a tag name (e.g. "keyword", "statusline") against a
// theme's color table and renders its style, falling back to the
// terminal's default style for names the table doesn't cover.
type Resolver struct {
	colors map[string]string
}

// NewResolver builds a Resolver over colors (typically config's merged
// ThemeConfig.Colors, defaults overlaid by user overrides).
func NewResolver(colors map[string]string) *Resolver {
	return &Resolver{colors: colors}
}

// Style returns the rendered style for name, or the default style if name
// has no entry or its tag fails to parse.
func (r *Resolver) Style(name string) lipgloss.Style {
	tag, ok := r.colors[name]
	if !ok {
		return lipgloss.NewStyle()
	}
	return Style(tag)
}
