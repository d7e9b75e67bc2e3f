package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/meteor/internal/parser"
)

// parseOptions holds flags shared by parse and shoot.
type parseOptions struct {
	Aggregate bool
	Trace     bool
}

// NewParseCommand feeds arguments through the implicit token-stream grammar
// and prints the resulting store.
func NewParseCommand(root *RootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <stream>...",
		Short: "Parse implicit token streams into a store and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			p := parser.NewTokenStream(eng)
			for _, input := range args {
				if opts.Aggregate {
					err = p.ProcessAggregated(input)
				} else {
					err = p.Process(input)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "parsing stream", err)
				}
			}
			if err := renderStore(cmd.OutOrStdout(), root.Format, buildStoreView(eng)); err != nil {
				return err
			}
			if opts.Trace {
				return renderHistory(cmd.OutOrStdout(), root.Format, eng.History())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Aggregate, "aggregate", false, "buffer and validate whole records before writing")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the command audit trail after parsing")
	return cmd
}

// NewShootCommand feeds arguments through the explicit meteor-stream grammar.
func NewShootCommand(root *RootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "shoot <stream>...",
		Short: "Parse explicit meteor streams into a store and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			p := parser.NewMeteorStream(eng)
			for _, input := range args {
				if opts.Aggregate {
					err = p.ProcessAggregated(input)
				} else {
					err = p.Process(input)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "parsing stream", err)
				}
			}
			if err := renderStore(cmd.OutOrStdout(), root.Format, buildStoreView(eng)); err != nil {
				return err
			}
			if opts.Trace {
				return renderHistory(cmd.OutOrStdout(), root.Format, eng.History())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Aggregate, "aggregate", false, "buffer and validate whole records before writing")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the command audit trail after parsing")
	return cmd
}

// NewValidateCommand checks stream syntax without storing anything.
func NewValidateCommand(root *RootOptions) *cobra.Command {
	var grammar string

	cmd := &cobra.Command{
		Use:   "validate <stream>...",
		Short: "Validate stream syntax without mutating anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if grammar != "token" && grammar != "meteor" {
				return WrapExitError(ExitCommandError, "invalid grammar", nil)
			}
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			for _, input := range args {
				if grammar == "token" {
					err = parser.NewTokenStream(eng).Validate(input)
				} else {
					err = parser.NewMeteorStream(eng).Validate(input)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "invalid stream", err)
				}
			}
			cmd.Println("ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&grammar, "grammar", "token", "grammar to validate against (token|meteor)")
	return cmd
}
