// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/skulk-project/skulk/pkg/output"
)

// DiagnosticSubscriber renders diagnostic events to stderr. Events above
// the configured verbosity level are dropped, which keeps the diagnostic
// channel silent on a default run.
type DiagnosticSubscriber struct {
	stderr   io.Writer
	maxLevel output.OutputLevel
}

// NewDiagnosticSubscriber creates a subscriber that shows diagnostic events
// up to and including maxLevel.
func NewDiagnosticSubscriber(stderr io.Writer, maxLevel output.OutputLevel) *DiagnosticSubscriber {
	return &DiagnosticSubscriber{
		stderr:   stderr,
		maxLevel: maxLevel,
	}
}

// Name returns the subscriber identifier.
func (s *DiagnosticSubscriber) Name() string {
	return "diagnostic"
}

// ShouldHandle accepts diagnostic events within the verbosity budget.
func (s *DiagnosticSubscriber) ShouldHandle(event output.OutputEvent) bool {
	return event.Type == output.EventDiag && event.Level <= s.maxLevel
}

// Handle renders the diagnostic line with sorted key=value metadata.
func (s *DiagnosticSubscriber) Handle(event output.OutputEvent) {
	if len(event.Metadata) == 0 {
		_, _ = fmt.Fprintf(s.stderr, "[debug] %s\n", event.Message)
		return
	}

	keys := make([]string, 0, len(event.Metadata))
	for k := range event.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, event.Metadata[k])
	}
	_, _ = fmt.Fprintf(s.stderr, "[debug] %s%s\n", event.Message, b.String())
}
