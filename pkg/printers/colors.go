package printers

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/cardboard/pkg/card"
)

// NormalizeHex parses a 3 or 6 digit hex color, with or without the leading
// '#', and returns it as lower case #rrggbb.
func NormalizeHex(raw string) (string, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Profile picks the color profile for out. Anything that is not a terminal
// gets plain text, as does NO_COLOR.
func Profile(out *os.File) termenv.Profile {
	if color.NoColor || out == nil {
		return termenv.Ascii
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// paint renders text in the theme's half of pair. Colors that would not
// read on the theme's background are skipped.
func paint(profile termenv.Profile, text string, pair card.ColorPair, theme card.Theme, bold bool) string {
	s := profile.String(text)
	if hex, ok := NormalizeHex(pair.For(theme)); ok && Readable(hex, theme) {
		s = s.Foreground(profile.Color(hex))
	}
	if bold {
		s = s.Bold()
	}
	return s.String()
}

// Readable reports whether the hex color has enough lightness contrast to
// be read on the background of theme.
func Readable(hex string, theme card.Theme) bool {
	c, err := colorful.Hex(hex)
	if err != nil {
		return false
	}
	l, _, _ := c.Lab()
	if theme == card.Dark {
		return l > 0.35
	}
	return l < 0.85
}
