package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnana997/nativegen/pkg/generator"
	mcpserver "github.com/gnana997/nativegen/pkg/mcp"
	"github.com/gnana997/nativegen/pkg/mcplog"
	"github.com/gnana997/nativegen/pkg/util"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger := util.NewLogger(loggerConfigFromEnv())
	util.SetDefault(logger)

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "schema":
		os.Exit(runSchema(args))
	case "watch":
		os.Exit(runWatch(args))
	case "serve":
		os.Exit(runServe(args))
	case "version":
		fmt.Printf("nativegen %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runSchema generates the combined schema library for a directory of spec
// files and writes it to the output path.
func runSchema(args []string) int {
	root, flags := splitArgs(args)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: nativegen schema <dir> [--out file]")
		return 1
	}

	gen, err := generator.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize generator: %v\n", err)
		return 1
	}
	defer gen.Close()

	library, stats, err := gen.Run(root, resolveGenerateConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "schema generation failed: %v\n", err)
		return 1
	}

	out := resolveOutPath(flags["out"])
	if err := generator.WriteLibrary(library, out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		return 1
	}

	fmt.Printf("wrote %d component schema(s) to %s (%d file(s) failed)\n",
		len(library.Modules), out, stats.FilesFailed)
	if stats.FilesFailed > 0 {
		return 1
	}
	return 0
}

// runWatch generates once, then keeps the output up to date as spec files
// change.
func runWatch(args []string) int {
	root, flags := splitArgs(args)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: nativegen watch <dir> [--out file]")
		return 1
	}

	gen, err := generator.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize generator: %v\n", err)
		return 1
	}
	defer gen.Close()

	cfg := resolveGenerateConfig()
	out := resolveOutPath(flags["out"])

	library, _, err := gen.Run(root, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schema generation failed: %v\n", err)
		return 1
	}
	if err := generator.WriteLibrary(library, out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
		return 1
	}

	watcher, err := generator.NewWatcher(gen, cfg, generator.WatchOptions{Output: out}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create watcher: %v\n", err)
		return 1
	}
	if err := watcher.Start(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start watcher: %v\n", err)
		return 1
	}
	defer watcher.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	return 0
}

// runServe generates schemas for a directory and serves them over MCP on
// stdio.
func runServe(args []string) int {
	root, flags := splitArgs(args)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: nativegen serve <dir> [--log file]")
		return 1
	}

	gen, err := generator.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize generator: %v\n", err)
		return 1
	}
	defer gen.Close()

	cfg := resolveGenerateConfig()
	if _, _, err := gen.Run(root, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "schema generation failed: %v\n", err)
		return 1
	}

	watcher, err := generator.NewWatcher(gen, cfg, generator.WatchOptions{}, nil)
	if err == nil {
		if err := watcher.Start(root); err == nil {
			defer watcher.Stop()
		}
	}

	toolLog, err := mcplog.NewLogger(flags["log"])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open tool log: %v\n", err)
		return 1
	}
	if toolLog != nil {
		defer toolLog.Close()
	}

	srv := mcpserver.NewServer(gen.Store(), toolLog)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

// splitArgs separates the positional root directory from --flag value
// pairs.
func splitArgs(args []string) (string, map[string]string) {
	flags := make(map[string]string)
	root := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 2 && arg[:2] == "--" {
			if i+1 < len(args) {
				flags[arg[2:]] = args[i+1]
				i++
			}
			continue
		}
		if root == "" {
			root = arg
		}
	}
	return root, flags
}

func loggerConfigFromEnv() util.LoggerConfig {
	cfg := util.DefaultLoggerConfig()
	if level := os.Getenv("NATIVEGEN_LOG_LEVEL"); level != "" {
		cfg.Level = util.LogLevel(level)
	}
	return cfg
}

func printUsage() {
	fmt.Println("Usage: nativegen <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  schema <dir>   Extract component schemas and write the combined JSON")
	fmt.Println("  watch <dir>    Keep the schema output up to date as files change")
	fmt.Println("  serve <dir>    Serve component schemas over MCP (stdio)")
	fmt.Println("  version        Print version")
	fmt.Println("  help           Show this help message")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --out file     Output path for schema/watch (default schema.json)")
	fmt.Println("  --log file     JSONL tool-call log for serve")
}
