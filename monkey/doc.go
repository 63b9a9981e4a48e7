// Package monkey implements a tree-walking interpreter for the Monkey
// language. The language supports:
//   - Integer and boolean literals, and a single null value.
//   - Prefix operators (-, !) and infix operators (+, -, *, /, <, >, ==, !=)
//     with the usual precedence; parentheses group.
//   - `let` bindings, `if (cond) { ... } else { ... }` expressions and
//     first-class `fn(params) { ... }` closures with implicit return.
//
// Lex produces tokens, ParseProgram builds the AST and collects parse
// errors, and Engine evaluates programs in an Env. Runtime failures are
// Error values rather than Go errors; the step quota and recursion limit in
// Config bound every evaluation.
package monkey
