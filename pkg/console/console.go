// Package console prints user-facing messages, colored when the destination
// is a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer writes status messages to a single writer.
type Printer struct {
	out     io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	prompt  *color.Color
}

// NewPrinter returns a Printer for out. Color is enabled only when out is a
// terminal and NO_COLOR is not set.
func NewPrinter(out io.Writer) *Printer {
	return newPrinter(out, isTerminal(out) && os.Getenv("NO_COLOR") == "")
}

func newPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		prompt:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.success, p.warn, p.fail, p.prompt} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Successf prints a green line.
func (p *Printer) Successf(format string, a ...interface{}) {
	p.success.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Warnf prints a yellow line.
func (p *Printer) Warnf(format string, a ...interface{}) {
	p.warn.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Errorf prints a red line.
func (p *Printer) Errorf(format string, a ...interface{}) {
	p.fail.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Infof prints an uncolored line.
func (p *Printer) Infof(format string, a ...interface{}) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, a...))
}

// Prompt prints a question without a trailing newline.
func (p *Printer) Prompt(question string) {
	p.prompt.Fprint(p.out, question)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
