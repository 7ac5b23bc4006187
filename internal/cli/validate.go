package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/reflux/internal/harness"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file without running it",
		Long: `Validate a YAML scenario against the embedded schema without running it.

Checks the document structure, action names, and expectation blocks.
Faster than run for editing feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if outErr := formatter.Error(ErrCodeScenario, fmt.Sprintf("cannot read scenario: %v", err), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "cannot read scenario", err)
	}

	if err := harness.ValidateScenarioYAML(raw); err != nil {
		if outErr := formatter.Error(ErrCodeScenario, "scenario invalid", err.Error()); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "scenario invalid", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{File: path, Valid: true})
	}
	return formatter.Success(fmt.Sprintf("%s: valid", path))
}
