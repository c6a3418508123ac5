package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlparse",
	Short: "Parse a text stream against the fixture SQL dialect",
	Long: `sqlparse drives the core parsing engine against a small,
hand-built SELECT-only dialect (internal/fixture) standing in for a real
dialect library. It exists to exercise the engine end to end, not to parse
real SQL.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
