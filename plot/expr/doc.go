// Package expr compiles single-variable arithmetic expressions such as
// "sin(x)/x" or "2x^2 - 3(x+1)" into evaluators over the variable x.
//
// Compilation resolves every identifier up front: x becomes a variable slot,
// known constants are folded into numbers and anything else is rejected. A
// compiled *Expr is immutable and may be shared between the sampler and the
// curve renderer.
package expr
