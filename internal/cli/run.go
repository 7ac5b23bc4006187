package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/reflux/internal/harness"
	"github.com/roach88/reflux/internal/journal"
	"github.com/roach88/reflux/internal/todo"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string

	// Tokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens journal.TokenGenerator
}

// RunResult holds the run command output.
type RunResult struct {
	Scenario   string   `json:"scenario"`
	RunToken   string   `json:"run_token"`
	Dispatches int      `json:"dispatches"`
	Digest     string   `json:"digest"`
	Order      []int    `json:"order"`
	Journal    string   `json:"journal,omitempty"`
	Failures   []string `json:"failures,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and verify its expectations",
		Long: `Run a YAML scenario through the store and verify its expectations.

Each step is decoded into an action and dispatched in order. The resulting
trace is checked against the scenario's expect block. With --journal the
trace is also recorded in a SQLite journal for later inspection and replay.

Example:
  reflux run scenarios/basic_crud.yaml
  reflux run scenarios/basic_crud.yaml --journal ./runs.db --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (optional)")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot read scenario", err)
	}
	if err := harness.ValidateScenarioYAML(raw); err != nil {
		return WrapExitError(ExitCommandError, "scenario invalid", err)
	}
	sc, err := harness.ParseScenario(raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot parse scenario", err)
	}
	slog.Info("scenario loaded", "name", sc.Name, "steps", len(sc.Steps))

	runner := &harness.Runner{Tokens: opts.Tokens}
	if opts.Journal != "" {
		slog.Info("opening journal", "path", opts.Journal)
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()
		runner.Journal = j
	}

	res, err := runner.Run(cmd.Context(), sc)
	if err != nil {
		return WrapExitError(ExitFailure, "scenario run failed", err)
	}

	digest, err := res.Snapshot.Digest()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot digest trace", err)
	}

	result := RunResult{
		Scenario:   sc.Name,
		RunToken:   res.Snapshot.RunToken,
		Dispatches: len(res.Snapshot.Events),
		Digest:     digest,
		Order:      todo.Order(res.State),
		Journal:    opts.Journal,
	}
	for _, vErr := range harness.Verify(sc, res) {
		result.Failures = append(result.Failures, vErr.Error())
	}

	if opts.Format == "json" {
		if len(result.Failures) > 0 {
			if outErr := formatter.Success(result); outErr != nil {
				return outErr
			}
			return NewExitError(ExitFailure, "scenario expectations failed")
		}
		return formatter.Success(result)
	}

	writeRunText(formatter, result)
	if len(result.Failures) > 0 {
		return NewExitError(ExitFailure, "scenario expectations failed")
	}
	return nil
}

func writeRunText(f *OutputFormatter, result RunResult) {
	fmt.Fprintf(f.Writer, "Scenario: %s\n", result.Scenario)
	fmt.Fprintf(f.Writer, "Run:      %s\n", result.RunToken)
	fmt.Fprintf(f.Writer, "Steps:    %d dispatched\n", result.Dispatches)
	fmt.Fprintf(f.Writer, "Order:    %v\n", result.Order)
	fmt.Fprintf(f.Writer, "Digest:   %s\n", result.Digest)
	if result.Journal != "" {
		fmt.Fprintf(f.Writer, "Journal:  %s\n", result.Journal)
	}
	if len(result.Failures) == 0 {
		fmt.Fprintln(f.Writer, "PASS")
		return
	}
	fmt.Fprintf(f.Writer, "FAIL (%d expectation(s)):\n", len(result.Failures))
	for _, failure := range result.Failures {
		fmt.Fprintf(f.Writer, "  - %s\n", strings.TrimSpace(failure))
	}
}
