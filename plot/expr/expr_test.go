package expr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCompile_EvalValues(t *testing.T) {
	tests := []struct {
		in   string
		x    float64
		want float64
	}{
		{in: "x^2", x: 3, want: 9},
		{in: "x**2", x: -2, want: 4},
		{in: "-x^2", x: 3, want: -9},
		{in: "2^3^2", x: 0, want: 512},
		{in: "2x + 1", x: 4, want: 9},
		{in: "3(x+1)", x: 1, want: 6},
		{in: "(x+1)(x-1)", x: 3, want: 8},
		{in: "1/2*x", x: 4, want: 2},
		{in: "sin(pi/2)", x: 0, want: 1},
		{in: "log(e)", x: 0, want: 1},
		{in: "log(8, 2)", x: 0, want: 3},
		{in: "max(x, 1, 7)", x: 3, want: 7},
		{in: "clamp(x, 0, 1)", x: 5, want: 1},
		{in: "mod(-1, 3)", x: 0, want: 2},
		{in: "abs([x - 10])", x: 4, want: 6},
		{in: ".5e1 + x", x: 1, want: 6},
		{in: "PI", x: 0, want: math.Pi},
	}

	for _, tt := range tests {
		e, err := Compile(tt.in)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tt.in, err)
		}
		got, err := e.Eval(tt.x)
		if err != nil {
			t.Fatalf("%q.Eval(%v) error: %v", tt.in, tt.x, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%q.Eval(%v)=%v, want %v", tt.in, tt.x, got, tt.want)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{in: "", want: ErrParse},
		{in: "x +", want: ErrParse},
		{in: "(x", want: ErrParse},
		{in: "x)", want: ErrParse},
		{in: "x $ 2", want: ErrParse},
		{in: "y + 1", want: ErrUnknownVar},
		{in: "sin", want: ErrParse},
		{in: "foo(x)", want: ErrUnknownFunc},
		{in: "sin(x, 2)", want: ErrArity},
		{in: "clamp(x)", want: ErrArity},
	}

	for _, tt := range tests {
		_, err := Compile(tt.in)
		if err == nil {
			t.Fatalf("Compile(%q) succeeded, want %v", tt.in, tt.want)
		}
		if !errors.Is(err, tt.want) {
			t.Fatalf("Compile(%q) error=%v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestEval_UndefinedPoints(t *testing.T) {
	tests := []struct {
		in   string
		x    float64
		want error
	}{
		{in: "1/x", x: 0, want: ErrDivByZero},
		{in: "x^-1", x: 0, want: ErrDivByZero},
		{in: "mod(x, 0)", x: 1, want: ErrDivByZero},
		{in: "sqrt(x)", x: -1, want: ErrDomain},
		{in: "log(x)", x: -2, want: ErrDomain},
		{in: "ln(x)", x: 0, want: ErrDomain},
		{in: "asin(x)", x: 2, want: ErrDomain},
		{in: "x^0.5", x: -4, want: ErrDomain},
	}

	for _, tt := range tests {
		e, err := Compile(tt.in)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tt.in, err)
		}
		_, err = e.Eval(tt.x)
		if !errors.Is(err, ErrEval) || !errors.Is(err, tt.want) {
			t.Fatalf("%q.Eval(%v) error=%v, want %v", tt.in, tt.x, err, tt.want)
		}
	}
}

func TestEval_InfinityIsAValue(t *testing.T) {
	e, err := Compile("exp(x)")
	if err != nil {
		t.Fatal(err)
	}
	v, err := e.Eval(1000)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if !math.IsInf(v, 1) {
		t.Fatalf("exp(1000)=%v, want +Inf", v)
	}
}

func TestCompile_FoldsConstants(t *testing.T) {
	e, err := Compile("2*pi + 1")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Constant() {
		t.Fatalf("expected constant expression, tree=%s", e)
	}

	e, err = Compile("1/0 + x")
	if err != nil {
		t.Fatalf("Compile(1/0 + x) error: %v", err)
	}
	if _, err := e.Eval(1); !errors.Is(err, ErrDivByZero) {
		t.Fatalf("Eval error=%v, want division by zero", err)
	}
}

func TestCompiler_CachesBySource(t *testing.T) {
	c := NewCompiler(0)

	a, err := c.Compile("x^2 + 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compile("  x^2   +  1 ")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("expected cached *Expr to be reused")
	}
	if c.Len() != 1 {
		t.Fatalf("Len=%d, want 1", c.Len())
	}

	if _, err := c.Compile("x +"); err == nil {
		t.Fatalf("expected parse error")
	}
	if c.Len() != 1 {
		t.Fatalf("errors must not be cached, Len=%d", c.Len())
	}

	d, err := c.Compile("1 2")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Eval(0); v != 2 {
		t.Fatalf("1 2 = %v, want implicit product 2", v)
	}
}

func TestCompile_BareFunctionNeedsParentheses(t *testing.T) {
	for _, in := range []string{"sin", "SIN", "Sqrt + 1"} {
		_, err := Compile(in)
		if !errors.Is(err, ErrParse) || errors.Is(err, ErrUnknownVar) {
			t.Fatalf("Compile(%q) err=%v, want parse error", in, err)
		}
		if err == nil || !strings.Contains(err.Error(), "needs parentheses") {
			t.Fatalf("Compile(%q) err=%v, want parentheses hint", in, err)
		}
	}
}
