package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reflux/internal/dispatch"
	"github.com/roach88/reflux/internal/todo"
	"github.com/roach88/reflux/internal/trace"
)

// DemoStep is one dispatch of the built-in demo and its outcome.
type DemoStep struct {
	Action   string         `json:"action"`
	Args     map[string]any `json:"args,omitempty"`
	Order    []int          `json:"order"`
	Observed string         `json:"observed"`
}

// DemoResult holds the demo command output.
type DemoResult struct {
	Steps []DemoStep `json:"steps"`
	Order []int      `json:"order"`
	Tasks []string   `json:"tasks"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in dispatch walkthrough",
		Long: `Run a fixed dispatch sequence against an in-memory store.

Adds two todos, removes the first, and marks the second done, with an
observer watching the second todo's done flag. Shows each dispatch, the
order after it, and what the observer saw.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}

	return cmd
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st := dispatch.New[todo.State, todo.Action](todo.NewState()).Use(todo.Reduce)

	var seen []*bool
	dispatch.Observe(st, todo.DoneFlag(2), func(v *bool) {
		seen = append(seen, v)
	})

	actions := []todo.Action{
		todo.AddTodo(todo.New(1, "learn reducers")),
		todo.AddTodo(todo.New(2, "ship the demo")),
		todo.RemoveTodo(1),
		todo.UpdateTodo(todo.Todo{ID: 2, Task: "ship the demo", Done: true}),
	}

	result := DemoResult{}
	for _, action := range actions {
		name, args, err := todo.EncodeAction(action)
		if err != nil {
			return WrapExitError(ExitCommandError, "demo action", err)
		}
		before := len(seen)
		if err := st.Dispatch(action); err != nil {
			return WrapExitError(ExitCommandError, "demo dispatch", err)
		}
		step := DemoStep{
			Action:   name,
			Args:     args,
			Order:    todo.Order(st.State()),
			Observed: trace.ObservedNone,
		}
		if len(seen) > before {
			step.Observed = trace.ObservedBool(seen[len(seen)-1])
		}
		result.Steps = append(result.Steps, step)
	}
	result.Order = todo.Order(st.State())
	result.Tasks = todo.Tasks(st.State())

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	for i, step := range result.Steps {
		line := fmt.Sprintf("[%d] %s %v  order=%v", i+1, step.Action, step.Args, step.Order)
		if step.Observed != trace.ObservedNone {
			line += fmt.Sprintf("  observed=%s", step.Observed)
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	fmt.Fprintf(formatter.Writer, "Final order: %v\n", result.Order)
	fmt.Fprintf(formatter.Writer, "Final tasks: %v\n", result.Tasks)
	return nil
}
