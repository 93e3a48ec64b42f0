// Package output formats environctl results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR is set or TERM is dumb.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// Printer writes messages to out, and warnings and errors to errOut.
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
}

func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{out: out, errOut: errOut, useColors: useColors}
}

func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) colored(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	// fatih/color disables itself when stdout is not a terminal; an explicit
	// --color=always must still win.
	c.EnableColor()
	return c
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		p.colored(color.FgYellow).Fprintf(p.errOut, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.errOut, "[WARN] "+format+"\n", args...)
	}
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		p.colored(color.FgRed).Fprintf(p.errOut, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.errOut, "[ERROR] "+format+"\n", args...)
	}
}

// Header prints a section header
func (p *Printer) Header(title string) {
	rule := strings.Repeat("─", len([]rune(title)))
	if p.useColors {
		p.colored(color.FgWhite, color.Bold).Fprintf(p.out, "%s\n", title)
		p.colored(color.FgWhite).Fprintf(p.out, "%s\n", rule)
		return
	}
	fmt.Fprintf(p.out, "%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

func (p *Printer) Bold(text string) string {
	if p.useColors {
		return p.colored(color.Bold).Sprint(text)
	}
	return text
}
