package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/meteor/internal/archive"
	"github.com/roach88/meteor/internal/engine"
	"github.com/roach88/meteor/internal/parser"
)

// loadSnapshotEngine builds an engine and, when the snapshot file exists,
// restores it. A missing file is an empty store, so "set" can bootstrap one.
func loadSnapshotEngine(root *RootOptions, path string) (*engine.Engine, error) {
	eng, err := root.newEngine()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "creating engine", err)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return eng, nil
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening snapshot file", err)
	}
	defer f.Close()
	dump, err := archive.ReadSnapshot(f)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "reading snapshot", err)
	}
	if err := archive.Restore(eng, dump); err != nil {
		return nil, WrapExitError(ExitFailure, "restoring snapshot", err)
	}
	return eng, nil
}

func saveSnapshot(eng *engine.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "creating snapshot file", err)
	}
	defer f.Close()
	if err := archive.WriteSnapshot(f, eng); err != nil {
		return WrapExitError(ExitCommandError, "writing snapshot", err)
	}
	return nil
}

// NewSetCommand stores one value in a snapshot file.
func NewSetCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set <ctx:ns:key> <value>",
		Short: "Store one value in a snapshot file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadSnapshotEngine(root, file)
			if err != nil {
				return err
			}
			if err := eng.Set(args[0], args[1]); err != nil {
				return WrapExitError(ExitFailure, "storing value", err)
			}
			if err := saveSnapshot(eng, file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "snapshot file to update (created if missing)")
	cmd.MarkFlagRequired("file")
	return cmd
}

// NewGetCommand reads one value from a snapshot file. A missing key exits
// with the validation-failure code so scripts can branch on it.
func NewGetCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "get <ctx:ns:key>",
		Short: "Read one value from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadSnapshotEngine(root, file)
			if err != nil {
				return err
			}
			v, found, err := eng.Get(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad path", err)
			}
			if !found {
				return WrapExitError(ExitFailure, fmt.Sprintf("%s not found", args[0]), nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "snapshot file to read")
	cmd.MarkFlagRequired("file")
	return cmd
}

// NewDelCommand deletes a key, namespace, or context from a snapshot file.
func NewDelCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "del <path>",
		Short: "Delete a key, namespace, or context from a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadSnapshotEngine(root, file)
			if err != nil {
				return err
			}
			deleted, err := eng.Delete(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "bad path", err)
			}
			if err := saveSnapshot(eng, file); err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s not found\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "snapshot file to update")
	cmd.MarkFlagRequired("file")
	return cmd
}

// NewLsCommand lists a snapshot file's store.
func NewLsCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List every entry in a snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadSnapshotEngine(root, file)
			if err != nil {
				return err
			}
			return renderStore(cmd.OutOrStdout(), root.Format, buildStoreView(eng))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "snapshot file to read")
	cmd.MarkFlagRequired("file")
	return cmd
}

// NewHistoryCommand parses streams and prints the audit trail they produce.
func NewHistoryCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <stream>...",
		Short: "Parse implicit streams and print the audit trail",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			p := parser.NewTokenStream(eng)
			for _, input := range args {
				if err := p.Process(input); err != nil {
					return WrapExitError(ExitFailure, "parsing stream", err)
				}
			}
			return renderHistory(cmd.OutOrStdout(), root.Format, eng.History())
		},
	}
}
