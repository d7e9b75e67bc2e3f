package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/meteor/internal/archive"
	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/parser"
)

// NewExportCommand parses streams and writes the resulting store out: either
// into a SQLite archive (--db) or as a compressed snapshot file (--out).
func NewExportCommand(root *RootOptions) *cobra.Command {
	var dbPath, outPath string

	cmd := &cobra.Command{
		Use:   "export <stream>...",
		Short: "Parse streams and export the resulting store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" && outPath == "" {
				return WrapExitError(ExitCommandError, "one of --db or --out is required", nil)
			}
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

			if dbPath != "" {
				a, err := archive.Open(dbPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "opening archive", err)
				}
				defer a.Close()
				snap, err := a.Export(cmd.Context(), eng)
				if err != nil {
					return WrapExitError(ExitCommandError, "exporting snapshot", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s (checksum %s)\n", snap.ID, snap.Checksum)
			}

			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "creating snapshot file", err)
				}
				defer f.Close()
				if err := archive.WriteSnapshot(f, eng); err != nil {
					return WrapExitError(ExitCommandError, "writing snapshot", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite archive path")
	cmd.Flags().StringVar(&outPath, "out", "", "snapshot file path")
	return cmd
}

// NewImportCommand loads a snapshot and prints the restored store.
func NewImportCommand(root *RootOptions) *cobra.Command {
	var dbPath, snapshotID, inPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a snapshot and print the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}

			switch {
			case inPath != "":
				f, err := os.Open(inPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "opening snapshot file", err)
				}
				defer f.Close()
				dump, err := archive.ReadSnapshot(f)
				if err != nil {
					return WrapExitError(ExitFailure, "reading snapshot", err)
				}
				if err := archive.Restore(eng, dump); err != nil {
					return WrapExitError(ExitFailure, "restoring snapshot", err)
				}

			case dbPath != "" && snapshotID != "":
				a, err := archive.Open(dbPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "opening archive", err)
				}
				defer a.Close()
				if err := a.Import(cmd.Context(), snapshotID, eng); err != nil {
					return WrapExitError(ExitFailure, "importing snapshot", err)
				}

			default:
				return WrapExitError(ExitCommandError, "need --in, or --db with --snapshot", nil)
			}

			return renderStore(cmd.OutOrStdout(), root.Format, buildStoreView(eng))
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite archive path")
	cmd.Flags().StringVar(&snapshotID, "snapshot", "", "snapshot id to import")
	cmd.Flags().StringVar(&inPath, "in", "", "snapshot file path")
	return cmd
}

// NewProfilesCommand lists the embedded limit profiles.
func NewProfilesCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List embedded limit profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			current := eng.Profile()
			for _, name := range config.Names() {
				marker := " "
				if name == current.Name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}
