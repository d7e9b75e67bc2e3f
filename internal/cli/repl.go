package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/meteor/internal/parser"
)

// NewReplCommand starts an interactive session: one engine for the session
// lifetime, every line fed through the implicit grammar. Colon-prefixed
// lines are REPL-local commands, not stream text.
func NewReplCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive token-stream session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := root.newEngine()
			if err != nil {
				return WrapExitError(ExitCommandError, "creating engine", err)
			}
			p := parser.NewTokenStream(eng)
			out := cmd.OutOrStdout()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			prompt := func() {
				cur := eng.Cursor()
				fmt.Fprintf(out, "%s:%s> ", cur.Context.Name(), cur.Namespace.String())
			}

			prompt()
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
				case line == ":q", line == ":quit":
					return nil
				case line == ":ls":
					if err := renderStore(out, root.Format, buildStoreView(eng)); err != nil {
						return err
					}
				case line == ":history":
					if err := renderHistory(out, root.Format, eng.History()); err != nil {
						return err
					}
				case strings.HasPrefix(line, ":get "):
					path := strings.TrimSpace(strings.TrimPrefix(line, ":get "))
					v, found, err := eng.Get(path)
					switch {
					case err != nil:
						fmt.Fprintf(out, "error: %v\n", err)
					case !found:
						fmt.Fprintln(out, "(not found)")
					default:
						fmt.Fprintln(out, v)
					}
				case strings.HasPrefix(line, ":"):
					fmt.Fprintf(out, "unknown command %s (try :ls :get :history :q)\n", line)
				default:
					if err := p.Process(line); err != nil {
						fmt.Fprintf(out, "error: %v\n", err)
					}
				}
				prompt()
			}
			return scanner.Err()
		},
	}
}
