// Package console writes operator-facing lines with a small table of
// terminal styles. Styles are looked up per Printer, so tests and
// non-interactive runs can render plain text without touching global state.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Style selects how a line is highlighted.
type Style int

const (
	StylePlain Style = iota
	StyleHeader
	StyleInfo
	StyleSuccess
	StyleWarning
	StyleFailure
	StyleBold
)

var styleAttributes = map[Style][]color.Attribute{
	StyleHeader:  {color.FgHiMagenta, color.Bold},
	StyleInfo:    {color.FgHiBlue},
	StyleSuccess: {color.FgHiGreen},
	StyleWarning: {color.FgHiYellow},
	StyleFailure: {color.FgHiRed},
	StyleBold:    {color.Bold},
}

// Printer writes styled lines to an io.Writer.
type Printer struct {
	w      io.Writer
	styles map[Style]*color.Color
}

// New returns a Printer writing to w. When colorize is false every style
// renders as plain text.
func New(w io.Writer, colorize bool) *Printer {
	styles := make(map[Style]*color.Color, len(styleAttributes))
	for s, attrs := range styleAttributes {
		c := color.New(attrs...)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		styles[s] = c
	}
	return &Printer{w: w, styles: styles}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Printf writes a formatted string in the given style.
func (p *Printer) Printf(s Style, format string, args ...any) {
	if c, ok := p.styles[s]; ok {
		_, _ = c.Fprintf(p.w, format, args...)
		return
	}
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// Println writes a line in the given style.
func (p *Printer) Println(s Style, a ...any) {
	if c, ok := p.styles[s]; ok {
		_, _ = c.Fprintln(p.w, a...)
		return
	}
	_, _ = fmt.Fprintln(p.w, a...)
}

// Sprint renders a in the given style without writing it.
func (p *Printer) Sprint(s Style, a ...any) string {
	if c, ok := p.styles[s]; ok {
		return c.Sprint(a...)
	}
	return fmt.Sprint(a...)
}

// Fail writes a highlighted fatal diagnostic.
func (p *Printer) Fail(format string, args ...any) {
	p.Printf(StyleFailure, format+"\n", args...)
}

// Warn writes a highlighted recoverable diagnostic.
func (p *Printer) Warn(format string, args ...any) {
	p.Printf(StyleWarning, format+"\n", args...)
}

// Info writes an informational line.
func (p *Printer) Info(format string, args ...any) {
	p.Printf(StyleInfo, format+"\n", args...)
}

// Success writes a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	p.Printf(StyleSuccess, format+"\n", args...)
}
