package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/monkey/monkey"
)

const configEnvVar = "MONKEY_CONFIG"

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "lsp":
		return runLSP()
	case "version", "-v", "--version":
		fmt.Printf("monkey %s\n", monkey.Version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	stepQuota := fs.Int("steps", 0, "override the step quota (-1 for unlimited)")
	recursion := fs.Int("recursion", 0, "override the call depth limit (-1 for unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("monkey run: script path required")
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		return err
	}
	limits := settings.Limits()
	if *stepQuota != 0 {
		limits.StepQuota = *stepQuota
	}
	if *recursion != 0 {
		limits.RecursionLimit = *recursion
	}
	engine, err := monkey.NewEngine(limits)
	if err != nil {
		return err
	}

	source, err := readSource(remaining[0])
	if err != nil {
		return err
	}
	result, err := engine.Run(context.Background(), source, monkey.NewEnv())
	if err != nil {
		return fmt.Errorf("could not parse %s:\n%w", remaining[0], err)
	}
	if result.IsError() {
		return fmt.Errorf("runtime error: %w", result.Err())
	}
	if !result.IsNull() {
		fmt.Println(result.String())
	}
	return nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("monkey check: script path required")
	}

	failed := 0
	for _, path := range fs.Args() {
		source, err := readSource(path)
		if err != nil {
			return err
		}
		_, errs := monkey.ParseProgram(source)
		for _, msg := range errs.Messages() {
			fmt.Printf("%s:%s\n", path, msg)
		}
		if len(errs) > 0 {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("monkey check: %d file(s) failed to parse", failed)
	}
	return nil
}

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("monkey tokens: script path required")
	}
	source, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(formatTokens(source))
	return nil
}

// formatTokens renders one token per line as `line:col TYPE literal`.
func formatTokens(source string) string {
	var b strings.Builder
	for tok := range monkey.Lex(source) {
		fmt.Fprintf(&b, "%d:%d\t%s", tok.Pos.Line, tok.Pos.Column, tok.Type)
		if tok.Literal != "" && tok.Literal != string(tok.Type) {
			fmt.Fprintf(&b, "\t%q", tok.Literal)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("monkey ast: script path required")
	}
	source, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	program, errs := monkey.ParseProgram(source)
	if len(errs) > 0 {
		return fmt.Errorf("could not parse %s:\n%w", fs.Arg(0), errs)
	}
	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}

// readSource reads a script file, or stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// loadSettings reads the config file named by path, falling back to
// $MONKEY_CONFIG. With neither set the zero FileConfig (all defaults) is
// returned.
func loadSettings(path string) (monkey.FileConfig, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(configEnvVar))
	}
	if path == "" {
		return monkey.FileConfig{}, nil
	}
	return monkey.LoadConfigFile(path)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-steps n] [-recursion n] <script|->   evaluate a program and print its result")
	fmt.Fprintln(os.Stderr, "  repl [-config file] [-plain]                              start an interactive session")
	fmt.Fprintln(os.Stderr, "  check <script>...                                         report parse errors")
	fmt.Fprintln(os.Stderr, "  tokens <script|->                                         print the token stream")
	fmt.Fprintln(os.Stderr, "  ast <script|->                                            print the parsed statements")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path>...                               re-indent .monkey files")
	fmt.Fprintln(os.Stderr, "  analyze <script>                                          report unreachable code and unused bindings")
	fmt.Fprintln(os.Stderr, "  lsp                                                       serve the language server protocol on stdio")
	fmt.Fprintln(os.Stderr, "  version                                                   print the version")
	fmt.Fprintf(os.Stderr, "The config file may also be given with $%s.\n", configEnvVar)
	fmt.Fprintln(os.Stderr, "Programs stop after 1000000 evaluation steps or 100000 nested calls by default;")
	fmt.Fprintln(os.Stderr, "raise them with -steps and -recursion or the config file's engine section (-1 for unlimited).")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
