package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/reflux/internal/journal"
	"github.com/roach88/reflux/internal/trace"
)

func TestReplayMissingJournalFlag(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"some-token"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplayDeterministic(t *testing.T) {
	dbPath, token := journalRun(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", dbPath, token})

	err := cmd.Execute()
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, token)
	assert.Contains(t, out, "Replayed 4 dispatch(es)")
	assert.Contains(t, out, "DETERMINISTIC")
}

func TestReplayDeterministicJSON(t *testing.T) {
	dbPath, token := journalRun(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", dbPath, token})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["deterministic"])
	assert.Equal(t, data["recorded_digest"], data["replayed_digest"])
	assert.Equal(t, float64(4), data["dispatches"])
}

func TestReplayDiverged(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	// A journal claiming an order no dispatch could have produced
	tampered := trace.Snapshot{
		Scenario: "tampered",
		RunToken: "tampered-run",
		Watch:    2,
		Events: []trace.Event{
			{
				Seq:      1,
				Action:   "add",
				Args:     map[string]any{"id": 1, "task": "x"},
				Order:    []int{9},
				Observed: trace.ObservedNone,
			},
		},
	}
	require.NoError(t, j.Record(context.Background(), tampered))
	require.NoError(t, j.Close())

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", dbPath, "tampered-run"})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "DIVERGED")
}

func TestReplayUnknownRun(t *testing.T) {
	dbPath, _ := journalRun(t)

	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplayCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--journal", dbPath, "no-such-run"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
