// Package ui owns all terminal output for the installer: leveled progress
// reporting and interactive prompting. Keeping both behind small types lets
// the download/extract/install pipeline run without a terminal in tests.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level controls how much progress output a run produces.
type Level int

const (
	// Quiet suppresses everything except warnings, the final summary,
	// and errors.
	Quiet Level = iota
	// Normal prints one line per pipeline step.
	Normal
	// Verbose additionally prints per-candidate probing and tool output.
	Verbose
)

// Reporter renders progress, warnings, and the final success/failure banner.
type Reporter struct {
	level Level
	out   io.Writer
	errw  io.Writer
}

// NewReporter creates a reporter writing to stdout/stderr.
func NewReporter(level Level) *Reporter {
	return &Reporter{level: level, out: os.Stdout, errw: os.Stderr}
}

// NewReporterTo creates a reporter with explicit writers (for tests).
func NewReporterTo(level Level, out, errw io.Writer) *Reporter {
	return &Reporter{level: level, out: out, errw: errw}
}

// Verbose reports whether per-candidate detail should be shown.
func (r *Reporter) Verbose() bool {
	return r.level >= Verbose
}

// Quiet reports whether progress output is suppressed.
func (r *Reporter) Quiet() bool {
	return r.level == Quiet
}

// Info prints a progress line. Suppressed in quiet mode.
func (r *Reporter) Info(format string, args ...interface{}) {
	if r.level == Quiet {
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Detail prints extra diagnostics. Shown only in verbose mode.
func (r *Reporter) Detail(format string, args ...interface{}) {
	if r.level < Verbose {
		return
	}
	fmt.Fprintf(r.out, "  "+format+"\n", args...)
}

// Warn prints a warning to stderr. Never suppressed and never fatal.
func (r *Reporter) Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(r.errw, "warning: "+format+"\n", args...)
}

// Success prints the final success summary. Printed even in quiet mode so
// the user always gets a terminal success/failure signal.
func (r *Reporter) Success(format string, args ...interface{}) {
	color.New(color.FgGreen, color.Bold).Fprintf(r.out, format+"\n", args...)
}

// Failure prints the final failure banner to stderr.
func (r *Reporter) Failure(format string, args ...interface{}) {
	color.New(color.FgRed, color.Bold).Fprintf(r.errw, format+"\n", args...)
}

// Errorf prints a labeled error line to stderr.
func (r *Reporter) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(r.errw, "error: "+format+"\n", args...)
}
