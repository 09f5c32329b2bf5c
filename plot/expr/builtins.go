package expr

import (
	"fmt"
	"math"
)

var constants = map[string]float64{
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
	"phi": (1 + math.Sqrt(5)) / 2,
}

type builtin struct {
	minArgs int
	maxArgs int // -1 means variadic
	usage   string
	call    func(args []float64) (float64, error)
}

func unary(name string, fn func(float64) float64) builtin {
	return builtin{
		minArgs: 1,
		maxArgs: 1,
		usage:   name + "(x)",
		call: func(args []float64) (float64, error) {
			return fn(args[0]), nil
		},
	}
}

func binary(usage string, fn func(a, b float64) (float64, error)) builtin {
	return builtin{
		minArgs: 2,
		maxArgs: 2,
		usage:   usage,
		call: func(args []float64) (float64, error) {
			return fn(args[0], args[1])
		},
	}
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"sin":   unary("sin", math.Sin),
		"cos":   unary("cos", math.Cos),
		"tan":   unary("tan", math.Tan),
		"asin":  unary("asin", math.Asin),
		"acos":  unary("acos", math.Acos),
		"atan":  unary("atan", math.Atan),
		"sinh":  unary("sinh", math.Sinh),
		"cosh":  unary("cosh", math.Cosh),
		"tanh":  unary("tanh", math.Tanh),
		"asinh": unary("asinh", math.Asinh),
		"acosh": unary("acosh", math.Acosh),
		"atanh": unary("atanh", atanh),
		"sqrt":  unary("sqrt", math.Sqrt),
		"cbrt":  unary("cbrt", math.Cbrt),
		"abs":   unary("abs", math.Abs),
		"sign":  unary("sign", sign),
		"exp":   unary("exp", math.Exp),
		"exp2":  unary("exp2", math.Exp2),
		"expm1": unary("expm1", math.Expm1),
		"ln":    unary("ln", logStrict(math.Log)),
		"log2":  unary("log2", logStrict(math.Log2)),
		"log10": unary("log10", logStrict(math.Log10)),
		"log1p": unary("log1p", log1p),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"round": unary("round", round),
		"trunc": unary("trunc", math.Trunc),

		"log": {
			minArgs: 1,
			maxArgs: 2,
			usage:   "log(x[, base])",
			call:    builtinLog,
		},
		"pow": binary("pow(x, y)", func(a, b float64) (float64, error) {
			return evalBinary('^', a, b)
		}),
		"mod": binary("mod(x, y)", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}
			return a - b*math.Floor(a/b), nil
		}),
		"atan2": binary("atan2(y, x)", func(a, b float64) (float64, error) {
			return math.Atan2(a, b), nil
		}),
		"hypot": binary("hypot(x, y)", func(a, b float64) (float64, error) {
			return math.Hypot(a, b), nil
		}),
		"min": {
			minArgs: 1,
			maxArgs: -1,
			usage:   "min(a, b, ...)",
			call:    builtinMin,
		},
		"max": {
			minArgs: 1,
			maxArgs: -1,
			usage:   "max(a, b, ...)",
			call:    builtinMax,
		},
		"clamp": {
			minArgs: 3,
			maxArgs: 3,
			usage:   "clamp(x, lo, hi)",
			call:    builtinClamp,
		},
	}
}

func builtinLog(args []float64) (float64, error) {
	x := args[0]
	if x <= 0 {
		return 0, fmt.Errorf("%w: log of %v", ErrDomain, x)
	}
	if len(args) == 1 {
		return math.Log(x), nil
	}
	base := args[1]
	if base <= 0 || base == 1 {
		return 0, fmt.Errorf("%w: log base %v", ErrDomain, base)
	}
	return math.Log(x) / math.Log(base), nil
}

func builtinMin(args []float64) (float64, error) {
	m := args[0]
	for _, v := range args[1:] {
		if v < m {
			m = v
		}
	}
	return m, nil
}

func builtinMax(args []float64) (float64, error) {
	m := args[0]
	for _, v := range args[1:] {
		if v > m {
			m = v
		}
	}
	return m, nil
}

func builtinClamp(args []float64) (float64, error) {
	x, lo, hi := args[0], args[1], args[2]
	if lo > hi {
		lo, hi = hi, lo
	}
	if x < lo {
		return lo, nil
	}
	if x > hi {
		return hi, nil
	}
	return x, nil
}

// logStrict turns log(0) into NaN so it is reported as a domain error
// instead of producing -Inf.
func logStrict(fn func(float64) float64) func(float64) float64 {
	return func(x float64) float64 {
		if x <= 0 {
			return math.NaN()
		}
		return fn(x)
	}
}

func log1p(x float64) float64 {
	if x <= -1 {
		return math.NaN()
	}
	return math.Log1p(x)
}

func atanh(x float64) float64 {
	if x <= -1 || x >= 1 {
		return math.NaN()
	}
	return math.Atanh(x)
}

func sign(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 {
		return math.Ceil(x - 0.5)
	}
	return math.Floor(x + 0.5)
}
