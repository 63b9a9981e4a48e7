package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mgomes/monkey/monkey"
)

const (
	replBanner    = "Give the monkey some commands!"
	defaultPrompt = "🐒 "
	lastResultVar = "_"
)

// replSession is the state shared by both interactive front ends: one engine
// and one top-level environment that lives for the whole session.
type replSession struct {
	engine *monkey.Engine
	env    *monkey.Env
}

type replOutcome int

const (
	outcomeValue replOutcome = iota
	outcomeRuntimeError
	outcomeParseError
)

type varEntry struct {
	Name  string
	Value string
}

func newREPLSession(engine *monkey.Engine) *replSession {
	return &replSession{engine: engine, env: monkey.NewEnv()}
}

// eval runs one submission in the session environment. Successful results
// are bound to `_`.
func (s *replSession) eval(ctx context.Context, input string) (string, replOutcome) {
	val, err := s.engine.Run(ctx, input, s.env)
	if err != nil {
		return err.Error(), outcomeParseError
	}
	if val.IsError() {
		return val.Err().Error(), outcomeRuntimeError
	}
	s.env.Define(lastResultVar, val)
	return val.String(), outcomeValue
}

func (s *replSession) reset() {
	s.env = monkey.NewEnv()
}

func (s *replSession) vars() []varEntry {
	names := s.env.Names()
	out := make([]varEntry, 0, len(names))
	for _, name := range names {
		val, _ := s.env.Get(name)
		out = append(out, varEntry{Name: name, Value: val.String()})
	}
	return out
}

// completions returns the keywords and bound names starting with prefix,
// sorted.
func (s *replSession) completions(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var out []string
	for _, kw := range monkey.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			out = append(out, kw)
		}
	}
	for _, name := range s.env.Names() {
		if strings.HasPrefix(name, prefix) && name != lastResultVar {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *replSession) tokens(source string) string {
	return strings.TrimRight(formatTokens(source), "\n")
}

// commandResult is what a `:command` produced. quit ends the session.
type commandResult struct {
	output string
	isErr  bool
	quit   bool
}

// command handles the commands both front ends share. The TUI intercepts
// :help, :vars and :clear first to toggle its panels.
func (s *replSession) command(input string) commandResult {
	parts := strings.Fields(input)
	cmd := parts[0]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), cmd))

	switch cmd {
	case ":reset", ":r":
		s.reset()
		return commandResult{output: "Environment reset"}
	case ":tokens", ":t":
		if rest == "" {
			return commandResult{output: "usage: :tokens <source>", isErr: true}
		}
		return commandResult{output: s.tokens(rest)}
	case ":vars", ":v":
		entries := s.vars()
		if len(entries) == 0 {
			return commandResult{output: "No variables defined"}
		}
		lines := make([]string, len(entries))
		for i, entry := range entries {
			lines[i] = fmt.Sprintf("%s = %s", entry.Name, entry.Value)
		}
		return commandResult{output: strings.Join(lines, "\n")}
	case ":help", ":h":
		return commandResult{output: helpText()}
	case ":quit", ":q":
		return commandResult{quit: true}
	default:
		return commandResult{output: fmt.Sprintf("Unknown command: %s", cmd), isErr: true}
	}
}

var replCommands = []struct {
	key  string
	desc string
}{
	{":help", "Toggle this help"},
	{":vars", "Show variables"},
	{":tokens <src>", "Print the tokens of src"},
	{":clear", "Clear history"},
	{":reset", "Reset environment"},
	{":quit", "Exit REPL"},
}

func helpText() string {
	lines := make([]string, len(replCommands))
	for i, c := range replCommands {
		lines[i] = fmt.Sprintf("%-14s %s", c.key, c.desc)
	}
	return strings.Join(lines, "\n")
}
