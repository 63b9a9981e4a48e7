package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
)

type scriptedPrompter struct {
	inputs  []string
	errs    map[int]error
	prompts []string
	history []string
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	idx := len(p.prompts)
	p.prompts = append(p.prompts, prompt)
	if err, ok := p.errs[idx]; ok {
		return "", err
	}
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	line := p.inputs[0]
	p.inputs = p.inputs[1:]
	return line, nil
}

func (p *scriptedPrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func TestReadByParseProbeContinuesIncompleteInput(t *testing.T) {
	ln := &scriptedPrompter{inputs: []string{"let add = fn(a, b) {", "a + b", "};"}}

	code, ok := readByParseProbe(ln, "> ", "... ")
	if !ok {
		t.Fatalf("expected input")
	}
	if code != "let add = fn(a, b) {\na + b\n};" {
		t.Fatalf("unexpected code %q", code)
	}
	if strings.Join(ln.prompts, "|") != "> |... |... " {
		t.Fatalf("unexpected prompts %q", ln.prompts)
	}
}

func TestReadByParseProbeStopsOnSyntaxError(t *testing.T) {
	ln := &scriptedPrompter{inputs: []string{"let = ;", "unused"}}

	code, ok := readByParseProbe(ln, "> ", "... ")
	if !ok || code != "let = ;" {
		t.Fatalf("syntax errors should not ask for more input, got %q", code)
	}
}

func TestReadByParseProbeEOFAndAbort(t *testing.T) {
	ln := &scriptedPrompter{}
	if _, ok := readByParseProbe(ln, "> ", "... "); ok {
		t.Fatalf("EOF should end input")
	}

	ln = &scriptedPrompter{errs: map[int]error{0: liner.ErrPromptAborted}}
	code, ok := readByParseProbe(ln, "> ", "... ")
	if !ok || code != "" {
		t.Fatalf("abort should return empty input, got %q %v", code, ok)
	}
}

func TestLineLoop(t *testing.T) {
	ln := &scriptedPrompter{inputs: []string{
		"let x = 2;",
		"x * 3",
		":vars",
		"1 / 0",
		"let y = ;",
		":bogus",
		"",
	}}
	var out, errOut bytes.Buffer

	if err := lineLoop(ln, newTestSession(t), "> ", &out, &errOut); err != nil {
		t.Fatalf("lineLoop failed: %v", err)
	}

	want := blue("null") + "\n6\n_ = 6\nx = 2\n\n"
	if out.String() != want {
		t.Fatalf("unexpected stdout %q", out.String())
	}
	errText := errOut.String()
	for _, fragment := range []string{
		"ZeroDivisionError: division by zero: 1 / 0",
		"could not parse:\nparse error at 1:9",
		red("Unknown command: :bogus"),
	} {
		if !strings.Contains(errText, fragment) {
			t.Fatalf("expected %q in stderr %q", fragment, errText)
		}
	}
	if strings.Join(ln.history, "|") != "let x = 2;|x * 3|1 / 0|let y = ;" {
		t.Fatalf("unexpected history %q", ln.history)
	}
}

func TestLineLoopQuit(t *testing.T) {
	ln := &scriptedPrompter{inputs: []string{":quit", "1"}}
	var out, errOut bytes.Buffer

	if err := lineLoop(ln, newTestSession(t), "> ", &out, &errOut); err != nil {
		t.Fatalf("lineLoop failed: %v", err)
	}
	if out.Len() != 0 || len(ln.inputs) != 1 {
		t.Fatalf("quit should stop reading, stdout %q", out.String())
	}
}

func TestColorizeResult(t *testing.T) {
	tests := map[string]string{
		"null":  blue("null"),
		"true":  green("true"),
		"false": green("false"),
		"42":    "42",
	}
	for in, want := range tests {
		if got := colorizeResult(in); got != want {
			t.Fatalf("colorizeResult(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := resolveHistoryPath(""); got != filepath.Join(home, historyFileName) {
		t.Fatalf("unexpected default history path %q", got)
	}
	if got := resolveHistoryPath("~/hist/monkey"); got != filepath.Join(home, "hist", "monkey") {
		t.Fatalf("unexpected expanded path %q", got)
	}
	if got := resolveHistoryPath("/var/tmp/monkey_history"); got != "/var/tmp/monkey_history" {
		t.Fatalf("absolute paths should be kept, got %q", got)
	}
}
