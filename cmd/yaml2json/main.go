// Command yaml2json converts a YAML document to JSON.
//
// Usage: yaml2json < in.yaml > out.json
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgheat/yamljson"
)

var errUsage = errors.New("yaml2json takes no arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := rootCmd(stdin, stdout)
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(stderr, cmd.UsageString())
			return 1
		}
		fmt.Fprintf(stderr, "yaml2json: %v\n", err)
		return 1
	}
	return 0
}

func rootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yaml2json < in.yaml > out.json",
		Short: "Convert YAML to JSON",
		Long: `Convert YAML to JSON.

Reads a single YAML document from standard input and writes it
to standard output as JSON, indented with 2 spaces.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return errUsage
			}
			return nil
		},
		DisableFlagParsing: true, // --help and -- are arguments too
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return yamljson.Convert(stdin, stdout)
		},
	}
	return cmd
}
