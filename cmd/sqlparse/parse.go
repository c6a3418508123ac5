package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/driver"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/internal/fixture"
)

var parseFlags = struct {
	source  *string
	trace   *bool
	noCache *bool
	format  *string
}{}

const (
	outputFormatTree = "tree"
	outputFormatJSON = "json"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse a SQL statement against the fixture dialect",
		Example: `  echo "select a, b from t where a = 1" | sqlparse parse`,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.trace = cmd.Flags().Bool("trace", false, "log every frame transition to stderr")
	parseFlags.noCache = cmd.Flags().Bool("no-cache", false, "disable the parse cache")
	parseFlags.format = cmd.Flags().StringP("format", "f", "tree", "output format: one of tree|json")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if *parseFlags.format != outputFormatTree && *parseFlags.format != outputFormatJSON {
		return fmt.Errorf("invalid output format: %v", *parseFlags.format)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}

	toks := fixture.Lex(string(data))
	ctx := grammar.NewContext(fixture.SQLTables())

	var opts []driver.ParserOption
	if *parseFlags.noCache {
		opts = append(opts, driver.WithCache(false))
	}
	if *parseFlags.trace {
		opts = append(opts, driver.WithTrace(log.New(os.Stderr, "", 0).Printf))
	}

	p := driver.NewParser(toks, ctx, opts...)
	tree, err := p.ParseRoot()
	if err != nil {
		return err
	}

	switch *parseFlags.format {
	case outputFormatJSON:
		b, err := json.Marshal(tree)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(b))
	default:
		cst.PrintTree(os.Stdout, tree)
	}

	stats := p.PruningStats()
	if *parseFlags.trace {
		fmt.Fprintf(os.Stderr, "hint calls=%d pruned=%d cache hits=%d\n", stats.HintCalls, stats.HintPruned, stats.CacheHits)
	}

	return nil
}
