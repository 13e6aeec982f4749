// Package cli provides the command-line interface for hookplan.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/hookrelay"
	"github.com/mrz1836/hookrelay/internal/scenario"
)

// Execute runs the hookplan root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command. The function-based approach avoids
// package-level globals, keeping the command testable.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		noExec  bool
	)

	cmd := &cobra.Command{
		Use:   "hookplan <scenario.yaml>",
		Short: "Inspect hook dispatch order and results for a scenario file",
		Long: `hookplan loads a YAML scenario describing hook specifications, plugins and
calls, assembles a plugin registry from it, and prints the effective dispatch
order per hook. Unless --no-exec is set it also executes each listed call and
prints the aggregated results.

Scenario implementations return their configured literal result; this is an
inspection tool for chain ordering, not a plugin host.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			return run(cmd.OutOrStdout(), logger, args[0], noExec)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&noExec, "no-exec", false, "print the dispatch plan without executing calls")

	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

func run(out io.Writer, logger zerolog.Logger, path string, noExec bool) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	reg, err := sc.Build(logger)
	if err != nil {
		return err
	}
	if err := reg.CheckPending(); err != nil {
		return err
	}

	printPlan(out, reg)
	if noExec {
		return nil
	}
	return execCalls(out, reg, sc.Calls)
}

// printPlan writes each hook's dispatch order: non-wrappers in execution
// order, then wrappers.
func printPlan(out io.Writer, reg *hookrelay.Registry) {
	relay := reg.Hooks()
	for _, name := range relay.Names() {
		caller := relay.Hook(name)
		fmt.Fprintf(out, "hook %s%s\n", name, specSuffix(caller))
		for i, impl := range caller.Impls() {
			fmt.Fprintf(out, "  %2d. %s%s\n", i+1, impl.Plugin(), implSuffix(impl))
		}
	}
}

func specSuffix(caller *hookrelay.Caller) string {
	if !caller.HasSpec() {
		return " (no spec)"
	}
	spec := caller.Spec()
	var modes []string
	if spec.FirstResult() {
		modes = append(modes, "firstresult")
	}
	if spec.Historic() {
		modes = append(modes, "historic")
	}
	if len(modes) == 0 {
		return ""
	}
	return " (" + strings.Join(modes, ", ") + ")"
}

func implSuffix(impl *hookrelay.Impl) string {
	var flags []string
	if impl.IsWrapper() {
		flags = append(flags, "wrapper")
	}
	if impl.TryFirst() {
		flags = append(flags, "tryfirst")
	}
	if impl.TryLast() {
		flags = append(flags, "trylast")
	}
	if impl.Optional() {
		flags = append(flags, "optional")
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ",") + "]"
}

func execCalls(out io.Writer, reg *hookrelay.Registry, calls []scenario.Call) error {
	for _, call := range calls {
		caller := reg.Hooks().Hook(call.Hook)
		args := hookrelay.Args(call.Args)

		if caller.IsHistoric() {
			var results []any
			if err := caller.CallHistoric(args, func(res any) {
				results = append(results, res)
			}); err != nil {
				return err
			}
			fmt.Fprintf(out, "call %s %v -> %v (historic)\n", call.Hook, call.Args, results)
			continue
		}

		results, err := caller.Call(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "call %s %v -> %v\n", call.Hook, call.Args, results)
	}
	return nil
}
