// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "time"

// contextKey is a type for context keys to avoid collisions
type contextKey string

// OutputKey is the context key for the Output interface
const OutputKey contextKey = "output"

// OutputEventType defines the type of output event.
type OutputEventType string

const (
	// EventInfo represents a primary-channel line (always visible)
	EventInfo OutputEventType = "info"

	// EventError represents an error message
	EventError OutputEventType = "error"

	// EventWarning represents a warning message
	EventWarning OutputEventType = "warning"

	// EventResult represents a structured probe or scan result
	EventResult OutputEventType = "result"

	// EventDiag represents diagnostic information (only visible with -v/-vv)
	EventDiag OutputEventType = "diag"
)

// OutputLevel defines the verbosity level for diagnostic messages.
type OutputLevel int

const (
	// LevelNormal is the default level (always shown)
	LevelNormal OutputLevel = 0

	// LevelVerbose is shown with -v flag
	LevelVerbose OutputLevel = 1

	// LevelDebug is shown with -vv flag
	LevelDebug OutputLevel = 2
)

// OutputEvent represents a single output event emitted by recon logic.
type OutputEvent struct {
	// Type identifies the event category (info, error, result, diag)
	Type OutputEventType

	// Level specifies verbosity level (only used for EventDiag)
	Level OutputLevel

	// Message is the primary text content
	Message string

	// Name identifies structured data for EventResult (e.g., "syn_scan")
	Name string

	// Data carries the structured result for EventResult
	Data any

	// Metadata holds additional key-value pairs for diagnostic events
	Metadata map[string]any

	// Timestamp records when the event was created
	Timestamp time.Time
}

// Output is the interface recon components use to emit output events.
// Components emit through it without knowing the rendering format; the
// subscribers attached to the stream decide what is shown and where.
//
// Info carries the human-readable recon lines; Diag carries resolver
// classification and other troubleshooting detail that stays silent
// unless verbosity is raised.
type Output interface {
	// Info emits a primary-channel line (always visible).
	// Example: out.Info("[+] A: www.example.com -> 93.184.216.34")
	Info(message string)

	// Error emits an error message.
	Error(err error)

	// Warning emits a warning message.
	Warning(message string)

	// Result emits a structured result under a name, for machine formats.
	// Example: out.Result("syn_scan", scanResult)
	Result(name string, data any)

	// Diag emits diagnostic information (only visible with -v/-vv).
	Diag(level OutputLevel, message string, metadata map[string]any)
}
