// Package logger builds the structured logger shared by every command.
package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.Color{
	log.DebugLevel: lipgloss.Color("63"),
	log.InfoLevel:  lipgloss.Color("86"),
	log.WarnLevel:  lipgloss.Color("192"),
	log.ErrorLevel: lipgloss.Color("204"),
	log.FatalLevel: lipgloss.Color("134"),
}

// New creates a logger writing "[LEVEL] message key=value" lines to w.
// Debug output is only enabled when verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.SetStyles(styles())
	return l
}

// Nop returns a logger that discards everything.
func Nop() *log.Logger {
	return log.New(io.Discard)
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	for level, color := range levelColors {
		s.Levels[level] = lipgloss.NewStyle().
			SetString("[" + strings.ToUpper(level.String()) + "]").
			Foreground(color)
	}
	return s
}
