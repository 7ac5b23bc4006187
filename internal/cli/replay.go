package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/reflux/internal/harness"
	"github.com/roach88/reflux/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Journal string
}

// ReplayResult holds the replay outcome for one run.
type ReplayResult struct {
	RunToken      string `json:"run_token"`
	Scenario      string `json:"scenario"`
	Dispatches    int    `json:"dispatches"`
	Deterministic bool   `json:"deterministic"`
	Recorded      string `json:"recorded_digest"`
	Replayed      string `json:"replayed_digest"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-token>",
		Short: "Replay a journaled run and verify determinism",
		Long: `Replay a journaled run through a fresh store and verify determinism.

The recorded dispatches are decoded and re-dispatched in seq order against
a fresh store with the same watch registration. The replayed trace must
digest to the recorded trace's digest.

Exit codes:
  0 - Replay reproduced the recorded trace
  1 - Replay diverged from the recorded trace
  2 - Command error (journal not found, unknown run, etc.)

Examples:
  reflux replay --journal ./runs.db 0192f3a1-...
  reflux replay --journal ./runs.db 0192f3a1-... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runReplay(opts *ReplayOptions, token string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	snap, err := harness.Replay(cmd.Context(), j, token)

	var div *harness.DivergenceError
	if errors.As(err, &div) {
		result := ReplayResult{
			RunToken:      token,
			Deterministic: false,
			Recorded:      div.Recorded,
			Replayed:      div.Replayed,
		}
		if snap != nil {
			result.Scenario = snap.Scenario
			result.Dispatches = len(snap.Events)
		}
		if outErr := writeReplayResult(opts, formatter, result); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "replay diverged", err)
	}
	if err != nil {
		if journal.IsRunNotFound(err) {
			return WrapExitError(ExitCommandError, "run not found", err)
		}
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	digest, err := snap.Digest()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot digest trace", err)
	}
	return writeReplayResult(opts, formatter, ReplayResult{
		RunToken:      token,
		Scenario:      snap.Scenario,
		Dispatches:    len(snap.Events),
		Deterministic: true,
		Recorded:      digest,
		Replayed:      digest,
	})
}

func writeReplayResult(opts *ReplayOptions, formatter *OutputFormatter, result ReplayResult) error {
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Run:      %s\n", result.RunToken)
	if result.Scenario != "" {
		fmt.Fprintf(formatter.Writer, "Scenario: %s\n", result.Scenario)
	}
	if result.Deterministic {
		fmt.Fprintf(formatter.Writer, "Replayed %d dispatch(es), digest %s\n", result.Dispatches, result.Replayed)
		fmt.Fprintln(formatter.Writer, "DETERMINISTIC")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Recorded: %s\n", result.Recorded)
	fmt.Fprintf(formatter.Writer, "Replayed: %s\n", result.Replayed)
	fmt.Fprintln(formatter.Writer, "DIVERGED")
	return nil
}
