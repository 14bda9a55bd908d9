// Command oliver is the Oliver interpreter CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/nrperez/oliver/internal/value"
	"github.com/nrperez/oliver/pkg/oliver"
)

func main() {
	var (
		evalStr   = flag.String("e", "", "Evaluate an Oliver expression")
		dbPath    = flag.String("db", "", "SQLite session-log/program-cache path")
		noExcept  = flag.Bool("no-except", false, "Absorb evaluation errors instead of surfacing them")
		maxDepth  = flag.Int("max-depth", 512, "Maximum function-call nesting depth")
		maxStack  = flag.Int("max-stack", 4096, "Maximum data-stack size")
		history   = flag.Bool("history", false, "List recorded sessions from -db and exit")
		historyN  = flag.Int("n", 0, "Limit -history to the N most recent sessions (0 = all)")
	)
	flag.Parse()

	opts := []oliver.Option{
		oliver.WithNoExcept(*noExcept),
		oliver.WithMaxDepth(*maxDepth),
		oliver.WithMaxDataStack(*maxStack),
	}
	if *dbPath != "" {
		opts = append(opts, oliver.WithSQLiteStore(*dbPath))
	}

	runtime := oliver.New(opts...)
	defer runtime.Close()

	if *history {
		runHistory(runtime, *historyN)
		return
	}

	switch {
	case *evalStr != "":
		runSource(runtime, *evalStr)

	case flag.NArg() > 0:
		arg := flag.Arg(0)
		if _, err := os.Stat(arg); err == nil {
			result, err := runtime.EvalFile(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printResult(result)
		} else {
			runSource(runtime, arg)
		}

	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		runSource(runtime, string(input))

	default:
		runREPL(runtime)
	}
}

func runSource(runtime *oliver.Runtime, source string) {
	result, err := runtime.Eval(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printResult(result)
}

func printResult(v value.Value) {
	if _, ok := v.(value.Nothing); ok {
		return
	}
	fmt.Println(value.RenderPlain(v))
}

func runHistory(runtime *oliver.Runtime, limit int) {
	sessions, err := runtime.Sessions(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Println("no recorded sessions")
		return
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s\n", s.ID, humanize.Time(parseSessionTime(s.CreatedAt)))
		fmt.Printf("  source:   %s\n", s.Source)
		fmt.Printf("  compiled: %s\n", s.Compiled)
		fmt.Printf("  result:   %s\n", s.Result)
	}
}

func parseSessionTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
