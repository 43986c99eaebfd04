// Command solver solves a single verbal-arithmetic puzzle W1 + W2 = W3
// given on the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcorbin/cryptverb/internal/compiler"
	"github.com/jcorbin/cryptverb/internal/cryptarith"
	"github.com/jcorbin/cryptverb/internal/logio"
	"github.com/jcorbin/cryptverb/internal/panicerr"
	"github.com/jcorbin/cryptverb/internal/search"
	"github.com/jcorbin/cryptverb/internal/vm"
)

func main() {
	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	var code int
	defer func() { os.Exit(code) }()
	code = run(log)
}

func run(log *logio.Logger) int {
	var (
		trace    bool
		dump     bool
		base     int
		capacity int
		stackMax int
	)

	code := 0

	cmd := &cobra.Command{
		Use:           "solver W1 W2 W3",
		Short:         "solve a verbal-arithmetic puzzle W1 + W2 = W3",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w1, w2, w3 := strings.ToUpper(args[0]), strings.ToUpper(args[1]), strings.ToUpper(args[2])

			puzzle, err := cryptarith.New(w1, w2, w3, base)
			if err != nil {
				var setupErr *cryptarith.SetupError
				if errors.As(err, &setupErr) {
					fmt.Fprintln(os.Stderr, setupErr.Error())
					code = 2
					return nil
				}
				return err
			}

			var opts []search.Option
			if trace {
				opts = append(opts, search.WithTrace(log.Leveledf("TRACE")))
			}
			opts = append(opts, search.WithCapacity(capacity), search.WithStackMax(stackMax))

			var result search.Result
			if recErr := panicerr.Recover("solve", func() error {
				prog := compiler.Compile(puzzle)
				if dump {
					fmt.Fprint(os.Stdout, prog.Disassemble())
				}
				result = search.Search(prog, base, opts...)
				return nil
			}); recErr != nil {
				log.Errorf("%+v", recErr)
				code = 4
				return nil
			}

			if !result.Solved {
				fmt.Fprintln(os.Stdout, "no result")
				code = 3
				return nil
			}

			printSolution(os.Stdout, puzzle, result.State)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&trace, "trace", false, "enable trace logging")
	flags.BoolVar(&dump, "dump", false, "print the compiled program before solving")
	flags.IntVar(&base, "base", 10, "numeral base")
	flags.IntVar(&capacity, "cap", search.DefaultCapacity, "search frontier capacity")
	flags.IntVar(&stackMax, "stack-max", vm.StackMax, "per-branch operand stack bound")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}
	if ec := log.ExitCode(); ec != 0 && code == 0 {
		code = ec
	}
	return code
}

func printSolution(w io.Writer, p cryptarith.Puzzle, st vm.State) {
	fmt.Fprintln(w, "found")
	longest := len(p.W1)
	if len(p.W2) > longest {
		longest = len(p.W2)
	}
	if len(p.W3) > longest {
		longest = len(p.W3)
	}
	fmt.Fprintln(w, formatWord("w1", p.W1, st, longest))
	fmt.Fprintln(w, formatWord("w2", p.W2, st, longest))
	fmt.Fprintln(w, formatWord("w3", p.W3, st, longest))
}

func formatWord(label, word string, st vm.State, longest int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s:", label)
	for i := 0; i < longest-len(word); i++ {
		b.WriteString("    ")
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		fmt.Fprintf(&b, " %c:%d", c, st.Letters[c])
	}
	return b.String()
}
