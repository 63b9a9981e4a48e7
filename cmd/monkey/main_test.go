package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"monkey", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"monkey", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"monkey"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIVersion(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return runCLI([]string{"monkey", "version"})
	})
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "monkey ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestRunCommandPrintsResult(t *testing.T) {
	scriptPath := writeScript(t, "let add = fn(a, b) { a + b };\nadd(2, 3)\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "5" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestRunCommandDoesNotPrintNull(t *testing.T) {
	scriptPath := writeScript(t, "let x = 1;")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestRunCommandRequiresScriptPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected script path error")
	}
	if !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandReportsParseErrors(t *testing.T) {
	scriptPath := writeScript(t, "let = 1;")

	err := runCommand([]string{scriptPath})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "could not parse") || !strings.Contains(err.Error(), "parse error at 1:5") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandReportsRuntimeErrors(t *testing.T) {
	scriptPath := writeScript(t, "let x = 10;\nx / 0")

	err := runCommand([]string{scriptPath})
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "runtime error: ZeroDivisionError: division by zero") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "at <program> (2:3)") {
		t.Fatalf("expected program frame in %q", msg)
	}
}

func TestRunCommandStepsFlag(t *testing.T) {
	scriptPath := writeScript(t, countdownScript)

	err := runCommand([]string{"-steps", "10", scriptPath})
	if err == nil || !strings.Contains(err.Error(), "LimitError") {
		t.Fatalf("expected step quota error, got %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-steps", "-1", scriptPath})
	})
	if err != nil {
		t.Fatalf("unlimited run failed: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunCommandRecursionFlag(t *testing.T) {
	scriptPath := writeScript(t, "let down = fn(n) { if (n == 0) { 0 } else { down(n - 1) } };\ndown(100)\n")

	err := runCommand([]string{"-recursion", "10", scriptPath})
	if err == nil || !strings.Contains(err.Error(), "recursion depth exceeded (limit 10)") {
		t.Fatalf("expected recursion error, got %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-recursion", "-1", scriptPath})
	})
	if err != nil {
		t.Fatalf("unlimited run failed: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunCommandConfigFile(t *testing.T) {
	scriptPath := writeScript(t, countdownScript)
	configPath := filepath.Join(t.TempDir(), "monkey.yaml")
	if err := os.WriteFile(configPath, []byte("engine:\n  recursion_limit: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := runCommand([]string{"-config", configPath, scriptPath})
	if err == nil || !strings.Contains(err.Error(), "RecursionError") {
		t.Fatalf("expected recursion error, got %v", err)
	}
}

func TestRunCommandRejectsBadConfig(t *testing.T) {
	scriptPath := writeScript(t, "1")
	configPath := filepath.Join(t.TempDir(), "monkey.yaml")
	if err := os.WriteFile(configPath, []byte("engine:\n  steps: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := runCommand([]string{"-config", configPath, scriptPath})
	if err == nil || !strings.Contains(err.Error(), "config: parse") {
		t.Fatalf("expected config parse error, got %v", err)
	}
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "monkey.yaml")
	if err := os.WriteFile(configPath, []byte("repl:\n  prompt: \"> \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configEnvVar, configPath)

	settings, err := loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	if settings.REPL.Prompt != "> " {
		t.Fatalf("unexpected prompt %q", settings.REPL.Prompt)
	}

	t.Setenv(configEnvVar, "")
	settings, err = loadSettings("")
	if err != nil {
		t.Fatalf("loadSettings without config failed: %v", err)
	}
	if settings.REPL.Prompt != "" || settings.Engine.StepQuota != 0 {
		t.Fatalf("expected zero settings, got %+v", settings)
	}
}

func TestCheckCommand(t *testing.T) {
	good := writeScript(t, "let x = 1; x")
	if err := checkCommand([]string{good}); err != nil {
		t.Fatalf("check failed on valid script: %v", err)
	}

	bad := writeScript(t, "let x 1;\nlet = 2;")
	out, err := captureStdout(t, func() error {
		return checkCommand([]string{good, bad})
	})
	if err == nil || !strings.Contains(err.Error(), "1 file(s) failed to parse") {
		t.Fatalf("unexpected check error: %v", err)
	}
	if !strings.Contains(out, bad+`:1:7: expected "=", got integer`) {
		t.Fatalf("unexpected check output: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected two reported errors, got %q", out)
	}
}

func TestTokensCommand(t *testing.T) {
	scriptPath := writeScript(t, "let x = 5;")

	out, err := captureStdout(t, func() error {
		return tokensCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	want := "1:1\tLET\t\"let\"\n1:5\tIDENT\t\"x\"\n1:7\t=\n1:9\tINT\t\"5\"\n1:10\t;\n1:11\tEOF\n"
	if out != want {
		t.Fatalf("unexpected tokens:\n%s", out)
	}
}

func TestASTCommand(t *testing.T) {
	scriptPath := writeScript(t, "let x = 1 + 2 * 3;\n-a")

	out, err := captureStdout(t, func() error {
		return astCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}
	if out != "let x = (1 + (2 * 3));\n(-a)\n" {
		t.Fatalf("unexpected ast output: %q", out)
	}
}

func TestAnalyzeCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, "let value = 1;\nvalue")

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("analyzeCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected analyze output: %q", out)
	}
}

func TestAnalyzeCommandReportsUnreachableStatements(t *testing.T) {
	scriptPath := writeScript(t, "let run = fn() {\n  return 1;\n  2\n};\nrun()")

	out, err := captureStdout(t, func() error {
		return analyzeCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected analyze command to report lint failures")
	}
	if !strings.Contains(err.Error(), "analysis found 1 issue(s)") {
		t.Fatalf("unexpected analyze error: %v", err)
	}
	if !strings.Contains(out, ":3:3: unreachable statement (run)") {
		t.Fatalf("expected unreachable statement warning, got %q", out)
	}
}

const countdownScript = `let countdown = fn(n) {
  if (n == 0) { return 0; }
  countdown(n - 1)
};
countdown(20)
`

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.monkey")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
