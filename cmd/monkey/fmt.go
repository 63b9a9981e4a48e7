package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/monkey/monkey"
)

const indentUnit = "  "

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("monkey fmt: path required")
	}

	files, err := collectMonkeyFiles(targets)
	if err != nil {
		return err
	}

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted, err := formatMonkeySource(original)
		if err != nil {
			return fmt.Errorf("could not parse %s:\n%w", path, err)
		}
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("monkey fmt: %d file(s) need formatting", changedCount)
	}

	return nil
}

// collectMonkeyFiles expands directories into the .monkey files below them.
// Explicitly named files are taken whatever their extension.
func collectMonkeyFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != ".monkey" {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatMonkeySource re-indents source by brace depth, strips trailing
// whitespace, collapses runs of blank lines and ends the file with a single
// newline. Source that does not parse is returned unchanged with its errors.
func formatMonkeySource(source string) (string, error) {
	if _, errs := monkey.ParseProgram(source); len(errs) > 0 {
		return source, errs
	}

	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	opens, closes, leading := braceCounts(normalized, len(lines))

	out := make([]string, 0, len(lines))
	depth := 0
	blank := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		indent := max(0, depth-leading[i])
		out = append(out, strings.Repeat(indentUnit, indent)+trimmed)
		depth = max(0, depth+opens[i]-closes[i])
	}

	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

// braceCounts tallies the braces on each line, and how many closing braces
// come before any other token on that line.
func braceCounts(source string, lineCount int) (opens, closes, leading []int) {
	opens = make([]int, lineCount)
	closes = make([]int, lineCount)
	leading = make([]int, lineCount)
	lastLine := 0
	onlyClosing := true

	for tok := range monkey.Lex(source) {
		if tok.IsEOF() {
			break
		}
		idx := tok.Pos.Line - 1
		if idx < 0 || idx >= lineCount {
			continue
		}
		if idx != lastLine {
			lastLine = idx
			onlyClosing = true
		}
		switch tok.Literal {
		case "{":
			opens[idx]++
			onlyClosing = false
		case "}":
			closes[idx]++
			if onlyClosing {
				leading[idx]++
			}
		default:
			onlyClosing = false
		}
	}
	return opens, closes, leading
}
