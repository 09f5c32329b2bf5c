package expr

import "errors"

var (
	ErrParse = errors.New("parse error")
	ErrEval  = errors.New("eval error")

	// ErrUnknownVar is returned when an expression names a variable other than x.
	ErrUnknownVar = errors.New("unknown variable")
	// ErrUnknownFunc is returned when an expression calls an unknown function.
	ErrUnknownFunc = errors.New("unknown function")
	ErrArity       = errors.New("wrong number of arguments")

	ErrDivByZero = errors.New("division by zero")
	// ErrDomain is returned when an operation is undefined for its operands,
	// for example sqrt(-1) or log(-2).
	ErrDomain = errors.New("outside domain")
)
