// Package output provides terminal output formatting for the CLI.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes formatted command output, with colors when enabled.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to stdout/stderr.
func NewPrinter(useColors bool) *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr, useColors: useColors}
}

// NewPrinterWithWriters creates a printer with custom writers.
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// ResolveColors determines whether colors should be used, honoring the
// NO_COLOR convention and dumb terminals.
func ResolveColors(configColors bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// Success prints a green confirmation line.
func (p *Printer) Success(format string, a ...any) {
	p.line(p.out, color.FgGreen, "✓ ", format, a...)
}

// Error prints a red error line to stderr.
func (p *Printer) Error(format string, a ...any) {
	p.line(p.err, color.FgRed, "✗ ", format, a...)
}

// Warn prints a yellow warning line to stderr.
func (p *Printer) Warn(format string, a ...any) {
	p.line(p.err, color.FgYellow, "! ", format, a...)
}

// Info prints a plain line.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

func (p *Printer) line(w io.Writer, c color.Attribute, prefix, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if p.useColors {
		color.New(c).Fprintln(w, prefix+msg)
		return
	}
	fmt.Fprintln(w, prefix+msg)
}
