package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"loom/internal/dataflow"
	"loom/internal/ir"
	"loom/internal/parser"
)

func main() {
	args := os.Args[1:]
	verbosity := 0
	if len(args) > 0 && args[0] == "-v" {
		verbosity = 1
		args = args[1:]
	}
	if len(args) < 1 {
		fmt.Println("Usage: loom [-v] <file.tir>")
		os.Exit(1)
	}

	commonlog.Configure(verbosity, nil)

	startTime := time.Now()
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	module, err := parser.ParseSource(path, string(source))
	if err != nil {
		parser.ReportParseError(string(source), err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	dataflow.NewPipeline().Run(module)

	for _, fn := range module.Funcs {
		if err := ir.Verify(fn); err != nil {
			fmt.Fprintf(os.Stderr, "verification of @%s failed: %v\n", fn.Name, err)
			color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
			os.Exit(1)
		}
	}

	fmt.Print(ir.PrintModule(module))
	color.Green("Successfully processed %s in %s", path, formatDuration(time.Since(startTime)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
