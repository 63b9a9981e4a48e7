package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/monkey/monkey"
)

type lintWarning struct {
	Function string
	Pos      monkey.Position
	Message  string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("monkey analyze: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	program, errs := monkey.ParseProgram(string(input))
	if len(errs) > 0 {
		return fmt.Errorf("analysis parse failed: %w", errs)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s (%s)\n", scriptPath, line, column, warning.Message, warning.Function)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgramWarnings(program *monkey.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintScope("<program>", program.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})

	return warnings
}

// lintScope checks one function body (or the program) and then every
// function literal nested in it.
func lintScope(function string, statements []monkey.Statement, warnings *[]lintWarning) {
	lintStatements(function, statements, warnings)
	lintUnusedBindings(function, statements, warnings)

	for _, stmt := range statements {
		forEachFunction(stmt, func(fn *monkey.FunctionLiteral) {
			name := fn.Name
			if name == "" {
				name = "<anonymous>"
			}
			lintScope(name, fn.Body.Statements, warnings)
		})
	}
}

// forEachFunction calls visit for the outermost function literals in node.
// Literals nested inside those are reached when their parent is linted.
func forEachFunction(node monkey.Node, visit func(*monkey.FunctionLiteral)) {
	monkey.Inspect(node, func(n monkey.Node) bool {
		if fn, ok := n.(*monkey.FunctionLiteral); ok {
			visit(fn)
			return false
		}
		return true
	})
}

func lintStatements(function string, statements []monkey.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt monkey.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *monkey.ReturnStatement:
		return true
	case *monkey.ExpressionStatement:
		if ifExpr, ok := typed.Expr.(*monkey.IfExpression); ok {
			return ifExpressionTerminates(function, ifExpr, warnings)
		}
		return false
	case *monkey.BlockStatement:
		return lintStatements(function, typed.Statements, warnings)
	default:
		return false
	}
}

func ifExpressionTerminates(function string, expr *monkey.IfExpression, warnings *[]lintWarning) bool {
	consequentTerminated := lintStatements(function, expr.Consequence.Statements, warnings)
	if expr.Alternative == nil {
		return false
	}
	alternateTerminated := lintStatements(function, expr.Alternative.Statements, warnings)
	return consequentTerminated && alternateTerminated
}

// lintUnusedBindings reports lets whose name is never read before it is
// rebound or the scope ends. Reads inside nested functions count, and names
// starting with an underscore are exempt.
func lintUnusedBindings(function string, statements []monkey.Statement, warnings *[]lintWarning) {
	for i, stmt := range statements {
		let, ok := stmt.(*monkey.LetStatement)
		if !ok || strings.HasPrefix(let.Name.Name, "_") {
			continue
		}
		if referencesName(let.Value, let.Name.Name) || usedLater(statements[i+1:], let.Name.Name) {
			continue
		}
		*warnings = append(*warnings, lintWarning{
			Function: function,
			Pos:      let.Name.Pos(),
			Message:  fmt.Sprintf("unused binding %s", let.Name.Name),
		})
	}
}

func usedLater(statements []monkey.Statement, name string) bool {
	for _, stmt := range statements {
		if let, ok := stmt.(*monkey.LetStatement); ok && let.Name.Name == name {
			return referencesName(let.Value, name)
		}
		if referencesName(stmt, name) {
			return true
		}
	}
	return false
}

// referencesName reports whether name is read anywhere in node. Function
// literals that bind name as a parameter are not searched.
func referencesName(node monkey.Node, name string) bool {
	found := false
	monkey.Inspect(node, func(n monkey.Node) bool {
		if found {
			return false
		}
		switch typed := n.(type) {
		case *monkey.LetStatement:
			if typed.Name.Name == name {
				// the binding itself is not a read
				found = referencesName(typed.Value, name)
				return false
			}
		case *monkey.FunctionLiteral:
			for _, param := range typed.Params {
				if param.Name == name {
					return false
				}
			}
		case *monkey.Identifier:
			if typed.Name == name {
				found = true
			}
		}
		return !found
	})
	return found
}
