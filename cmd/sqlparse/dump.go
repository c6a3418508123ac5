package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/internal/fixture"
)

func init() {
	cmd := &cobra.Command{
		Use:     "dump-grammar",
		Short:   "Print the fixture dialect's compiled tables as YAML",
		Example: `  sqlparse dump-grammar`,
		Args:    cobra.NoArgs,
		RunE:    runDumpGrammar,
	}
	rootCmd.AddCommand(cmd)
}

func runDumpGrammar(cmd *cobra.Command, args []string) error {
	return grammar.DumpTables(os.Stdout, fixture.SQLTables())
}
