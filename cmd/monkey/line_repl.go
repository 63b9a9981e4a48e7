package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/monkey/monkey"
	"github.com/peterh/liner"
)

const (
	historyFileName = ".monkey_history"
	continuePrompt  = "... "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

// linePrompter is the part of *liner.State the line REPL needs.
type linePrompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runLineREPL(engine *monkey.Engine, cfg monkey.REPLConfig) error {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	histPath := resolveHistoryPath(cfg.HistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	session := newREPLSession(engine)
	ln.SetCompleter(func(line string) []string {
		start := len(line)
		for start > 0 && isCompletionByte(line[start-1]) {
			start--
		}
		var out []string
		for _, c := range session.completions(line[start:]) {
			out = append(out, line[:start]+c)
		}
		return out
	})

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Println(replBanner)
	return lineLoop(ln, session, prompt, os.Stdout, os.Stderr)
}

// lineLoop reads submissions until EOF or :quit, writing results to out and
// errors to errOut.
func lineLoop(ln linePrompter, session *replSession, prompt string, out, errOut io.Writer) error {
	for {
		code, ok := readByParseProbe(ln, prompt, continuePrompt)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		input := strings.TrimSpace(code)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			if input == ":clear" || input == ":c" {
				fmt.Fprint(out, "\x1b[H\x1b[2J")
				continue
			}
			result := session.command(input)
			if result.quit {
				return nil
			}
			if result.isErr {
				fmt.Fprintln(errOut, red(result.output))
			} else {
				fmt.Fprintln(out, result.output)
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		output, outcome := session.eval(context.Background(), code)
		switch outcome {
		case outcomeParseError:
			fmt.Fprintln(errOut, red("could not parse:\n"+output))
		case outcomeRuntimeError:
			fmt.Fprintln(errOut, red(output))
		default:
			fmt.Fprintln(out, colorizeResult(output))
		}
	}
}

// readByParseProbe keeps prompting while the buffered source only fails to
// parse because it ends too early.
func readByParseProbe(ln linePrompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMoreInput(src) {
			return src, true
		}
	}
}

func colorizeResult(val string) string {
	switch {
	case val == "null":
		return blue(val)
	case val == "true" || val == "false":
		return green(val)
	default:
		return val
	}
}

// resolveHistoryPath expands a leading ~ and defaults to ~/.monkey_history.
func resolveHistoryPath(configured string) string {
	home, _ := os.UserHomeDir()
	switch {
	case configured == "":
		if home == "" {
			return ""
		}
		return filepath.Join(home, historyFileName)
	case strings.HasPrefix(configured, "~/") && home != "":
		return filepath.Join(home, configured[2:])
	default:
		return configured
	}
}
