// Copyright 2025 Skulk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skulk-project/skulk/pkg/output"
	"github.com/skulk-project/skulk/pkg/output/subscribers"
)

func TestHumanFormatter(t *testing.T) {
	t.Run("info lines go to stdout verbatim without color", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		f := subscribers.NewHumanFormatter(&stdout, &stderr, false)

		f.Handle(output.OutputEvent{Type: output.EventInfo, Message: "[+] A: www.example.com -> 93.184.216.34"})
		f.Handle(output.OutputEvent{Type: output.EventInfo, Message: "  PTR: web.example.com"})

		require.Equal(t, "[+] A: www.example.com -> 93.184.216.34\n  PTR: web.example.com\n", stdout.String())
		require.Empty(t, stderr.String())
	})

	t.Run("errors and warnings go to stderr", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		f := subscribers.NewHumanFormatter(&stdout, &stderr, false)

		f.Handle(output.OutputEvent{Type: output.EventError, Message: "raw socket: operation not permitted"})
		f.Handle(output.OutputEvent{Type: output.EventWarning, Message: "falling back to unprivileged ping"})

		require.Empty(t, stdout.String())
		require.Contains(t, stderr.String(), "Error: raw socket")
		require.Contains(t, stderr.String(), "Warning: falling back")
	})

	t.Run("ignores diag and result events", func(t *testing.T) {
		f := subscribers.NewHumanFormatter(&bytes.Buffer{}, &bytes.Buffer{}, false)

		require.False(t, f.ShouldHandle(output.OutputEvent{Type: output.EventDiag}))
		require.False(t, f.ShouldHandle(output.OutputEvent{Type: output.EventResult}))
		require.True(t, f.ShouldHandle(output.OutputEvent{Type: output.EventInfo}))
	})
}

func TestMachineFormatter(t *testing.T) {
	t.Run("json result is one parseable line", func(t *testing.T) {
		var stdout bytes.Buffer
		f := subscribers.NewMachineFormatter(&stdout, subscribers.FormatJSON)

		f.Handle(output.OutputEvent{
			Type: output.EventResult,
			Name: "syn_scan",
			Data: map[string]any{"host": "10.0.0.1", "open_ports": []int{80, 443}},
		})

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
		require.Equal(t, "syn_scan", decoded["result"])
	})

	t.Run("yaml result is a document", func(t *testing.T) {
		var stdout bytes.Buffer
		f := subscribers.NewMachineFormatter(&stdout, subscribers.FormatYAML)

		f.Handle(output.OutputEvent{Type: output.EventResult, Name: "dns_probe", Data: map[string]bool{"responsive": true}})

		require.Contains(t, stdout.String(), "---")
		require.Contains(t, stdout.String(), "result: dns_probe")
	})

	t.Run("ignores the human line vocabulary", func(t *testing.T) {
		f := subscribers.NewMachineFormatter(&bytes.Buffer{}, subscribers.FormatJSON)

		require.False(t, f.ShouldHandle(output.OutputEvent{Type: output.EventInfo}))
		require.True(t, f.ShouldHandle(output.OutputEvent{Type: output.EventResult}))
	})
}

func TestDiagnosticSubscriber(t *testing.T) {
	t.Run("silent above its verbosity budget", func(t *testing.T) {
		var stderr bytes.Buffer
		s := subscribers.NewDiagnosticSubscriber(&stderr, output.LevelNormal)

		require.False(t, s.ShouldHandle(output.OutputEvent{Type: output.EventDiag, Level: output.LevelDebug}))
	})

	t.Run("renders message and sorted metadata", func(t *testing.T) {
		var stderr bytes.Buffer
		s := subscribers.NewDiagnosticSubscriber(&stderr, output.LevelDebug)

		ev := output.OutputEvent{
			Type:    output.EventDiag,
			Level:   output.LevelDebug,
			Message: "no A record",
			Metadata: map[string]any{
				"kind":   "NoRecord",
				"domain": "missing.example.com",
			},
		}
		require.True(t, s.ShouldHandle(ev))
		s.Handle(ev)

		require.Equal(t, "[debug] no A record domain=missing.example.com kind=NoRecord\n", stderr.String())
	})
}
