// Package brewin implements an interpreter for Brewin, a small object-oriented
// language written in parenthesized prefix form:
//   - Programs are class definitions; execution starts by creating an object
//     of class `main` and calling its zero-argument `main` method.
//   - Classes hold fields initialized with literals and methods overloaded by
//     arity. Fields are private to the class that declares them.
//   - Statements: begin, if, while, set, print, inputi, inputs, return, call,
//     and in extended mode let.
//   - Expressions: literals, variables, me, new, call and the operators
//     + - * / % < > <= >= == != & | !.
//   - Extended mode adds declared types for fields, parameters, locals and
//     return values, single inheritance via `inherits`, and `call super`.
//
// Comments beginning with `#` run to the end of the line. Every failure is
// reported as an *Error carrying one of four kinds and the offending line.
package brewin
