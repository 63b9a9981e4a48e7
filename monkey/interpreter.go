package monkey

import (
	"context"
	"errors"
	"fmt"
)

// Version is reported by the CLI.
const Version = "0.3.0"

const (
	defaultStepQuota      = 1_000_000
	defaultRecursionLimit = 100_000

	// NoLimit disables a limit in Config.
	NoLimit = -1
)

// Config controls evaluation bounds. Zero fields select the defaults.
type Config struct {
	StepQuota      int
	RecursionLimit int
}

// Engine evaluates Monkey programs under fixed limits. An Engine holds no
// program state and may be shared; each Eval call gets its own Execution.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling defaults for zero limits.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota == 0 {
		cfg.StepQuota = defaultStepQuota
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.StepQuota < NoLimit {
		return nil, fmt.Errorf("invalid step quota %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit < NoLimit {
		return nil, fmt.Errorf("invalid recursion limit %d", cfg.RecursionLimit)
	}
	return &Engine{config: cfg}, nil
}

func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective limits.
func (e *Engine) Config() Config {
	return e.config
}

// ConfigSummary provides a human-readable description of the limits.
func (e *Engine) ConfigSummary() string {
	return fmt.Sprintf("steps=%s recursion=%s", limitLabel(e.config.StepQuota), limitLabel(e.config.RecursionLimit))
}

func limitLabel(n int) string {
	if n < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

// Eval evaluates a Program, statement or expression in env. Runtime failures,
// including exceeded limits and cancellation, come back as Error values. A
// nil env evaluates in a fresh top-level scope.
func (e *Engine) Eval(ctx context.Context, node Node, env *Env) Value {
	if env == nil {
		env = NewEnv()
	}
	exec := e.newExecution(ctx, node)

	var (
		val Value
		err error
	)
	switch n := node.(type) {
	case *Program:
		val, _, err = exec.evalStatements(n.Statements, env)
	case Statement:
		val, _, err = exec.evalStatement(n, env)
	case Expression:
		val, _, err = statementResult(exec.evalExpression(n, env))
	default:
		return NewError(exec.newRuntimeError(TypeError, fmt.Sprintf("cannot evaluate %T", node), Position{}, nil))
	}
	if err != nil {
		return NewError(asRuntimeError(exec, err))
	}
	return val
}

// Run parses source and evaluates it in env. The error is non-nil only when
// the source does not parse, in which case it is a ParseErrors and nothing
// was evaluated.
func (e *Engine) Run(ctx context.Context, source string, env *Env) (Value, error) {
	program, errs := ParseProgram(source)
	if len(errs) > 0 {
		return NewNull(), errs
	}
	return e.Eval(ctx, program, env), nil
}

func (e *Engine) newExecution(ctx context.Context, node Node) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	exec := &Execution{
		engine:       e,
		ctx:          ctx,
		quota:        e.config.StepQuota,
		recursionCap: e.config.RecursionLimit,
	}
	if program, ok := node.(*Program); ok {
		exec.source = program.Source()
	}
	return exec
}

func asRuntimeError(exec *Execution, err error) *RuntimeError {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr
	}
	return exec.newRuntimeError(TypeError, err.Error(), Position{}, err)
}
