package expr

// This file contains the expression tree, its evaluator and the resolver that
// turns parsed identifiers and calls into variable slots and builtins.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// env is the evaluation environment: the value bound to x.
type env struct {
	x float64
}

type node interface {
	Eval(e *env) (float64, error)
	String() string
}

type nodeNumber struct{ v float64 }

func (n nodeNumber) Eval(_ *env) (float64, error) { return n.v, nil }

func (n nodeNumber) String() string { return strconv.FormatFloat(n.v, 'g', -1, 64) }

// nodeVar is the resolved form of the free variable x.
type nodeVar struct{}

func (nodeVar) Eval(e *env) (float64, error) { return e.x, nil }

func (nodeVar) String() string { return "x" }

// nodeIdent and nodeCall only exist between parse and resolve.
type nodeIdent struct{ name string }

func (n nodeIdent) Eval(_ *env) (float64, error) {
	return 0, fmt.Errorf("%w: %w %q", ErrEval, ErrUnknownVar, n.name)
}

func (n nodeIdent) String() string { return n.name }

type nodeCall struct {
	name string
	args []node
}

func (n nodeCall) Eval(_ *env) (float64, error) {
	return 0, fmt.Errorf("%w: %w %q", ErrEval, ErrUnknownFunc, n.name)
}

func (n nodeCall) String() string { return callString(n.name, n.args) }

type nodeUnary struct {
	op byte
	x  node
}

func (n nodeUnary) Eval(e *env) (float64, error) {
	v, err := n.x.Eval(e)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return v, nil
	case '-':
		return -v, nil
	default:
		return 0, fmt.Errorf("%w: unary %q", ErrEval, n.op)
	}
}

func (n nodeUnary) String() string { return string(n.op) + n.x.String() }

type nodeBinary struct {
	op    byte
	left  node
	right node
}

func (n nodeBinary) Eval(e *env) (float64, error) {
	a, err := n.left.Eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.Eval(e)
	if err != nil {
		return 0, err
	}
	return evalBinary(n.op, a, b)
}

func (n nodeBinary) String() string {
	return "(" + n.left.String() + " " + string(n.op) + " " + n.right.String() + ")"
}

func evalBinary(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, fmt.Errorf("%w: %w", ErrEval, ErrDivByZero)
		}
		return a / b, nil
	case '^':
		if a == 0 && b < 0 {
			return 0, fmt.Errorf("%w: %w", ErrEval, ErrDivByZero)
		}
		out := math.Pow(a, b)
		if math.IsNaN(out) && !math.IsNaN(a) && !math.IsNaN(b) {
			return 0, fmt.Errorf("%w: %w: %v^%v", ErrEval, ErrDomain, a, b)
		}
		return out, nil
	default:
		return 0, fmt.Errorf("%w: binary %q", ErrEval, op)
	}
}

// nodeFunc is a resolved builtin call.
type nodeFunc struct {
	name string
	fn   builtin
	args []node
}

func (n nodeFunc) Eval(e *env) (float64, error) {
	var buf [4]float64
	vals := buf[:0]
	anyNaN := false
	for _, a := range n.args {
		v, err := a.Eval(e)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) {
			anyNaN = true
		}
		vals = append(vals, v)
	}
	out, err := n.fn.call(vals)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEval, n.name, err)
	}
	if math.IsNaN(out) && !anyNaN {
		return 0, fmt.Errorf("%w: %w: %s", ErrEval, ErrDomain, callString(n.name, n.args))
	}
	return out, nil
}

func (n nodeFunc) String() string { return callString(n.name, n.args) }

func callString(name string, args []node) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// resolve binds identifiers and calls, then folds constant subtrees.
func resolve(n node) (node, error) {
	switch n := n.(type) {
	case nodeNumber, nodeVar:
		return n, nil

	case nodeIdent:
		if n.name == "x" {
			return nodeVar{}, nil
		}
		name := strings.ToLower(n.name)
		if v, ok := constants[name]; ok {
			return nodeNumber{v: v}, nil
		}
		if _, ok := builtins[name]; ok {
			return nil, fmt.Errorf("%w: %s needs parentheses, as in %s(x)", ErrParse, n.name, n.name)
		}
		return nil, fmt.Errorf("%w: %q (only x is allowed)", ErrUnknownVar, n.name)

	case nodeUnary:
		x, err := resolve(n.x)
		if err != nil {
			return nil, err
		}
		return fold(nodeUnary{op: n.op, x: x}), nil

	case nodeBinary:
		left, err := resolve(n.left)
		if err != nil {
			return nil, err
		}
		right, err := resolve(n.right)
		if err != nil {
			return nil, err
		}
		return fold(nodeBinary{op: n.op, left: left, right: right}), nil

	case nodeCall:
		fn, ok := builtins[strings.ToLower(n.name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, n.name)
		}
		if len(n.args) < fn.minArgs || (fn.maxArgs >= 0 && len(n.args) > fn.maxArgs) {
			return nil, fmt.Errorf("%w: %s", ErrArity, fn.usage)
		}
		args := make([]node, len(n.args))
		for i, a := range n.args {
			r, err := resolve(a)
			if err != nil {
				return nil, err
			}
			args[i] = r
		}
		return fold(nodeFunc{name: strings.ToLower(n.name), fn: fn, args: args}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported node %T", ErrParse, n)
	}
}

// fold replaces a subtree without variables by its value. Subtrees that fail
// to evaluate are kept so the error surfaces per sample, not at compile time.
func fold(n node) node {
	if !isConst(n) {
		return n
	}
	v, err := n.Eval(&env{})
	if err != nil {
		return n
	}
	return nodeNumber{v: v}
}

func isConst(n node) bool {
	switch n := n.(type) {
	case nodeNumber:
		return true
	case nodeUnary:
		return isConst(n.x)
	case nodeBinary:
		return isConst(n.left) && isConst(n.right)
	case nodeFunc:
		for _, a := range n.args {
			if !isConst(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
