package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/reflux/internal/journal"
	"github.com/roach88/reflux/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Journal string
}

// TraceRunSummary is one row of the run listing.
type TraceRunSummary struct {
	Token      string `json:"token"`
	Scenario   string `json:"scenario"`
	Dispatches int    `json:"dispatches"`
}

// TraceResult holds the trace output for one run.
type TraceResult struct {
	Scenario string        `json:"scenario"`
	RunToken string        `json:"run_token"`
	Watch    int           `json:"watch,omitempty"`
	Digest   string        `json:"digest"`
	Events   []trace.Event `json:"events"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-token]",
		Short: "Inspect journaled runs",
		Long: `Inspect the dispatch journal.

Without a run token, lists all journaled runs. With a token, prints the
full dispatch timeline for that run: actions, arguments, rejections, and
the observed watch values.

Examples:
  reflux trace --journal ./runs.db
  reflux trace --journal ./runs.db 0192f3a1-...
  reflux trace --journal ./runs.db 0192f3a1-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runTrace(opts *TraceOptions, args []string, cmd *cobra.Command) error {
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

	if len(args) == 0 {
		return listRuns(opts, formatter, j, cmd)
	}
	return showRun(opts, formatter, j, args[0], cmd)
}

func listRuns(opts *TraceOptions, formatter *OutputFormatter, j *journal.Journal, cmd *cobra.Command) error {
	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		summaries := make([]TraceRunSummary, 0, len(runs))
		for _, r := range runs {
			summaries = append(summaries, TraceRunSummary{
				Token:      r.Token,
				Scenario:   r.Scenario,
				Dispatches: r.Dispatches,
			})
		}
		return formatter.Success(summaries)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs journaled.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  (%d dispatches)\n", r.Token, r.Scenario, r.Dispatches)
	}
	return nil
}

func showRun(opts *TraceOptions, formatter *OutputFormatter, j *journal.Journal, token string, cmd *cobra.Command) error {
	snap, err := j.ReadRun(cmd.Context(), token)
	if err != nil {
		if journal.IsRunNotFound(err) {
			return WrapExitError(ExitCommandError, "run not found", err)
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	digest, err := snap.Digest()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot digest trace", err)
	}

	if opts.Format == "json" {
		return formatter.Success(TraceResult{
			Scenario: snap.Scenario,
			RunToken: snap.RunToken,
			Watch:    snap.Watch,
			Digest:   digest,
			Events:   snap.Events,
		})
	}

	fmt.Fprintf(formatter.Writer, "Scenario: %s\n", snap.Scenario)
	fmt.Fprintf(formatter.Writer, "Run:      %s\n", snap.RunToken)
	if snap.Watch != 0 {
		fmt.Fprintf(formatter.Writer, "Watch:    todo %d\n", snap.Watch)
	}
	fmt.Fprintf(formatter.Writer, "Digest:   %s\n", digest)
	for _, ev := range snap.Events {
		line := fmt.Sprintf("  [%d] %s", ev.Seq, ev.Action)
		if len(ev.Args) > 0 {
			line += fmt.Sprintf(" %v", ev.Args)
		}
		if ev.Err != "" {
			line += fmt.Sprintf("  REJECTED: %s", ev.Err)
		} else {
			line += fmt.Sprintf("  order=%v", ev.Order)
			if ev.Observed != trace.ObservedNone {
				line += fmt.Sprintf(" observed=%s", ev.Observed)
			}
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}
