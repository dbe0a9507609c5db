package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer writes styled, user-facing messages to a writer.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New creates a Printer. Verbose messages are dropped unless verbose is set.
func New(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Success prints a completed operation.
//
// Example:
//
//	p.Success("Generated 12 files")
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render("✓ "+msg))
}

// Error prints a failure that needs user attention.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render("✗ "+msg))
}

// Info prints a status update.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, infoStyle.Render("ℹ "+msg))
}

// Step prints an indented sub-item.
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.w, stepStyle.Render("   "+msg))
}

// Verbose prints msg only in verbose mode.
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		fmt.Fprintln(p.w, stepStyle.Render("… "+msg))
	}
}
