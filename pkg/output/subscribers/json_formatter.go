// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/skulk-project/skulk/pkg/output"
)

// MachineFormat selects the encoding used by MachineFormatter.
type MachineFormat string

const (
	// FormatJSON renders each result as a single JSON line.
	FormatJSON MachineFormat = "json"

	// FormatYAML renders each result as a YAML document.
	FormatYAML MachineFormat = "yaml"
)

// resultEnvelope is the wire shape for a structured result.
type resultEnvelope struct {
	Result string `json:"result" yaml:"result"`
	Data   any    `json:"data" yaml:"data"`
}

// MachineFormatter renders structured result events as JSON lines or YAML
// documents on stdout. It ignores the human line vocabulary entirely, so
// machine output stays parseable. Used when --output is json or yaml.
type MachineFormatter struct {
	stdout io.Writer
	format MachineFormat
}

// NewMachineFormatter creates a formatter for the given format.
func NewMachineFormatter(stdout io.Writer, format MachineFormat) *MachineFormatter {
	return &MachineFormatter{
		stdout: stdout,
		format: format,
	}
}

// Name returns the subscriber identifier.
func (s *MachineFormatter) Name() string {
	return "machine-formatter"
}

// ShouldHandle accepts only structured results and errors.
func (s *MachineFormatter) ShouldHandle(event output.OutputEvent) bool {
	return event.Type == output.EventResult || event.Type == output.EventError
}

// Handle encodes the event onto stdout.
func (s *MachineFormatter) Handle(event output.OutputEvent) {
	switch event.Type {
	case output.EventResult:
		s.encode(resultEnvelope{Result: event.Name, Data: event.Data})

	case output.EventError:
		s.encode(map[string]string{"error": event.Message})
	}
}

func (s *MachineFormatter) encode(v any) {
	switch s.format {
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			_, _ = fmt.Fprintf(s.stdout, "error: %v\n", err)
			return
		}
		_, _ = fmt.Fprintf(s.stdout, "---\n%s", b)

	default:
		b, err := json.Marshal(v)
		if err != nil {
			_, _ = fmt.Fprintf(s.stdout, `{"error":%q}`+"\n", err.Error())
			return
		}
		_, _ = fmt.Fprintf(s.stdout, "%s\n", b)
	}
}
