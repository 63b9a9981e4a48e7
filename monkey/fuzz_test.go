package monkey

import (
	"context"
	"testing"
)

func FuzzParseProgramDoesNotPanic(f *testing.F) {
	f.Add("")
	f.Add("let x = 5;")
	f.Add("let add = fn(a, b) { a + b }; add(1, 2)")
	f.Add("if (x { 1 } else {")
	f.Add("fn(x, x) { x }")
	f.Add("99999999999999999999 @ #")

	f.Fuzz(func(t *testing.T, source string) {
		program, errs := ParseProgram(source)
		if program == nil {
			t.Fatalf("program should never be nil")
		}
		_ = program.String()
		_ = errs.Messages()
	})
}

func FuzzEvalDoesNotPanic(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("let f = fn(n) { f(n) }; f(1)")
	f.Add("let m = -9223372036854775807 - 1; m / -1")
	f.Add("let c = fn(x) { fn(y) { x + y } }; c(1)(true)")
	f.Add("if (1) { return; } 5")

	engine := MustNewEngine(Config{StepQuota: 10000, RecursionLimit: 64})
	f.Fuzz(func(t *testing.T, source string) {
		if len(source) > 4096 {
			source = source[:4096]
		}
		val, err := engine.Run(context.Background(), source, NewEnv())
		if err != nil {
			return
		}
		_ = val.Inspect()
	})
}
