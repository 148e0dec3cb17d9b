// Small terminal styling helpers for list output, adapted from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go (MIT licensed).
package termfmt

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"
)

var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// SetEnabled turns escapes on or off.  Off is for output that isn't a terminal: values are still
// formatted, just without decoration.
func SetEnabled(on bool) { enabled.Store(on) }

type Escape interface {
	Wrap(out string) string
}

func Bold() Style              { return (Style{}).Bold() }
func Italic() Style            { return (Style{}).Italic() }
func Linked(link string) Style { return (Style{}).Linked(link) }

type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	c.escapes = append(c.escapes, escs...)
	return c
}

func (c Style) Bold() Style   { return c.With(BoldEscape{}) }
func (c Style) Italic() Style { return c.With(ItalicEscape{}) }

// Linked makes an OSC 8 hyperlink.  An empty link leaves the text alone.
func (c Style) Linked(link string) Style {
	if link == "" {
		return c
	}
	return c.With(Link{link})
}

func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := printable(fmt.Sprintf(buildValueFormat(f, verb), c.v))
	if enabled.Load() {
		for i := len(c.escapes) - 1; i >= 0; i-- {
			v = c.escapes[i].Wrap(v)
		}
	}
	_, _ = f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	for _, flag := range " +-0#" {
		if f.Flag(int(flag)) {
			s += string(flag)
		}
	}
	if width, ok := f.Width(); ok {
		s += strconv.Itoa(width)
	}
	if prec, ok := f.Precision(); ok {
		s += "." + strconv.Itoa(prec)
	}
	return s + string(verb)
}

type Link struct {
	URL string
}

func (l Link) Wrap(out string) string {
	return "\x1b]8;;" + printable(l.URL) + "\x1b\\" + out + "\x1b]8;;\x1b\\"
}

type BoldEscape struct{}

func (BoldEscape) Wrap(v string) string { return "\x1b[1m" + v + "\x1b[0m" }

type ItalicEscape struct{}

func (ItalicEscape) Wrap(v string) string { return "\x1b[3m" + v + "\x1b[0m" }

// printable drops control characters, page names can contain anything.
func printable(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, v)
}
