// Command batchsolve reads "W1 W2 W3" puzzle lines from stdin and solves
// them concurrently, one goroutine per line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/cryptverb/internal/compiler"
	"github.com/jcorbin/cryptverb/internal/cryptarith"
	"github.com/jcorbin/cryptverb/internal/logio"
	"github.com/jcorbin/cryptverb/internal/panicerr"
	"github.com/jcorbin/cryptverb/internal/search"
)

type outcome struct {
	runID string
	line  string
	text  string
	code  int
}

func main() {
	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	var code int
	defer func() { os.Exit(code) }()
	code = run(log)
}

func run(log *logio.Logger) int {
	var (
		base  int
		trace bool
	)

	code := 0

	cmd := &cobra.Command{
		Use:           "batchsolve",
		Short:         "solve a batch of W1 W2 W3 puzzle lines read from stdin",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code = solveBatch(os.Stdin, os.Stdout, log, base, trace)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&base, "base", 10, "numeral base")
	flags.BoolVar(&trace, "trace", false, "enable per-line trace logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}
	return code
}

func solveBatch(in *os.File, out *os.File, log *logio.Logger, base int, trace bool) int {
	var lines []string
	scan := bufio.NewScanner(in)
	for scan.Scan() {
		if line := strings.TrimSpace(scan.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scan.Err(); err != nil {
		log.Errorf("reading stdin: %+v", err)
		return 1
	}

	results := make([]outcome, len(lines))
	eg, _ := errgroup.WithContext(context.Background())

	var setupErrs error
	for i, line := range lines {
		i, line := i, line
		eg.Go(func() error {
			res, err := solveOne(line, log, base, trace)
			if err != nil {
				multierr.AppendInto(&setupErrs, fmt.Errorf("line %d (%q): %w", i+1, line, err))
				res = outcome{runID: res.runID, line: line, text: err.Error(), code: 2}
			}
			results[i] = res
			return nil
		})
	}
	_ = eg.Wait()

	worst := 0
	for _, res := range results {
		fmt.Fprintf(out, "%s\t%s\t%s\n", res.runID, res.line, res.text)
		if res.code > worst {
			worst = res.code
		}
	}
	log.ErrorIf(setupErrs)
	if worst > 0 {
		return worst
	}
	return log.ExitCode()
}

// solveOne compiles and searches a single "W1 W2 W3" line, tagging it with a
// run ID so its trace lines (if any) can be told apart from its siblings'.
func solveOne(line string, log *logio.Logger, base int, trace bool) (outcome, error) {
	runID := uuid.NewString()

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return outcome{runID: runID}, fmt.Errorf("want 3 words, got %d", len(fields))
	}

	w1, w2, w3 := strings.ToUpper(fields[0]), strings.ToUpper(fields[1]), strings.ToUpper(fields[2])

	puzzle, err := cryptarith.New(w1, w2, w3, base)
	if err != nil {
		return outcome{runID: runID}, err
	}

	var opts []search.Option
	if trace {
		opts = append(opts, search.WithTrace(log.Leveledf("TRACE "+runID)))
	}

	var result search.Result
	recErr := panicerr.Recover(runID, func() error {
		prog := compiler.Compile(puzzle)
		result = search.Search(prog, base, opts...)
		return nil
	})
	if recErr != nil {
		return outcome{runID: runID, line: line, text: recErr.Error(), code: 4}, nil
	}
	if !result.Solved {
		return outcome{runID: runID, line: line, text: "no result", code: 3}, nil
	}

	var b strings.Builder
	for _, c := range puzzle.Letters() {
		fmt.Fprintf(&b, " %c:%d", c, result.State.Letters[c])
	}
	return outcome{runID: runID, line: line, text: "found" + b.String(), code: 0}, nil
}
