// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skulk-project/skulk/pkg/output"
)

// Lipgloss styles for the recon line vocabulary
var (
	// Hit style - "[+]" lines (discovered records, open ports)
	hitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	// Miss style - "[-]" lines (nothing found)
	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")) // Light gray

	// Phase style - "[*]" lines (phase announcements)
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Cyan
			Bold(true)

	// Notice style - "[!]" lines (user-facing notices)
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow

	// Pointer style - indented PTR lines
	pointerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("105")) // Purple

	// Error style - errors with icon
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")). // Red
			Bold(true)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")). // Yellow
			Bold(true)
)

// HumanFormatter renders the primary output channel: the human-readable
// recon lines on stdout, errors and warnings on stderr.
// Used when --output is "text" (the default).
type HumanFormatter struct {
	stdout       io.Writer
	stderr       io.Writer
	colorEnabled bool
}

// NewHumanFormatter creates a new HumanFormatter subscriber.
func NewHumanFormatter(stdout, stderr io.Writer, colorEnabled bool) *HumanFormatter {
	return &HumanFormatter{
		stdout:       stdout,
		stderr:       stderr,
		colorEnabled: colorEnabled,
	}
}

// Name returns the subscriber identifier.
func (s *HumanFormatter) Name() string {
	return "human-formatter"
}

// ShouldHandle decides if this subscriber cares about the event.
// HumanFormatter handles everything except diagnostic and structured
// result events; those belong to DiagnosticSubscriber and the machine
// formatters respectively.
func (s *HumanFormatter) ShouldHandle(event output.OutputEvent) bool {
	return event.Type != output.EventDiag && event.Type != output.EventResult
}

// Handle processes an output event and renders it in human-friendly format.
func (s *HumanFormatter) Handle(event output.OutputEvent) {
	switch event.Type {
	case output.EventInfo:
		s.printInfo(event.Message)

	case output.EventError:
		s.printError(event.Message)

	case output.EventWarning:
		s.printWarning(event.Message)
	}
}

// printInfo outputs a recon line, styled by its sigil
func (s *HumanFormatter) printInfo(message string) {
	if !s.colorEnabled {
		_, _ = fmt.Fprintln(s.stdout, message)
		return
	}

	var styled string
	switch {
	case strings.HasPrefix(message, "[+]"):
		styled = hitStyle.Render(message)

	case strings.HasPrefix(message, "[-]"):
		styled = missStyle.Render(message)

	case strings.HasPrefix(message, "[*]"):
		styled = phaseStyle.Render(message)

	case strings.HasPrefix(message, "[!]"):
		styled = noticeStyle.Render(message)

	case strings.HasPrefix(strings.TrimLeft(message, " "), "PTR:"):
		styled = pointerStyle.Render(message)

	default:
		styled = message
	}

	_, _ = fmt.Fprintln(s.stdout, styled)
}

// printError outputs an error message with styling
func (s *HumanFormatter) printError(message string) {
	if !s.colorEnabled {
		_, _ = fmt.Fprintf(s.stderr, "Error: %s\n", message)
		return
	}
	_, _ = fmt.Fprintln(s.stderr, errorStyle.Render("✗ "+message))
}

// printWarning outputs a warning message with styling
func (s *HumanFormatter) printWarning(message string) {
	if !s.colorEnabled {
		_, _ = fmt.Fprintf(s.stderr, "Warning: %s\n", message)
		return
	}
	_, _ = fmt.Fprintln(s.stderr, warningStyle.Render("⚠ "+message))
}
