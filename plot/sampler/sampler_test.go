package sampler

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"funcplot/plot/expr"
)

func mustCompile(t *testing.T, src string) *expr.Expr {
	t.Helper()
	e, err := expr.Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return e
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRun_Parabola(t *testing.T) {
	set, err := Run(mustCompile(t, "x^2"), Params{XMin: -2, XMax: 2, Step: 1, AutoY: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []Sample{{-2, 4}, {-1, 1}, {0, 0}, {1, 1}, {2, 4}}
	if !reflect.DeepEqual(set.Samples, want) {
		t.Fatalf("samples=%v, want %v", set.Samples, want)
	}
	if !near(set.YMin, -0.4) || !near(set.YMax, 4.4) {
		t.Fatalf("range=[%v, %v], want [-0.4, 4.4]", set.YMin, set.YMax)
	}
	if len(set.Skipped) != 0 {
		t.Fatalf("skipped=%v", set.Skipped)
	}
}

func TestRun_SkipsUndefinedPoints(t *testing.T) {
	set, err := Run(mustCompile(t, "1/x"), Params{XMin: -1, XMax: 1, Step: 0.5, AutoY: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("len=%d, want 4", set.Len())
	}
	for _, s := range set.Samples {
		if s.X == 0 {
			t.Fatalf("x=0 should be skipped")
		}
		if math.IsInf(s.Y, 0) || math.IsNaN(s.Y) {
			t.Fatalf("non-finite sample %v", s)
		}
	}
	if len(set.Skipped) != 1 || set.Skipped[0].X != 0 {
		t.Fatalf("skipped=%v, want x=0", set.Skipped)
	}
	if !errors.Is(set.Skipped[0].Err, expr.ErrDivByZero) {
		t.Fatalf("skip error=%v", set.Skipped[0].Err)
	}
}

func TestRun_CountMatchesCandidates(t *testing.T) {
	tests := []struct {
		xmin, xmax, step float64
		want             int
	}{
		{0, 10, 1, 11},
		{0, 1, 0.1, 11},
		{-5, 5, 0.25, 41},
		{0, 1, 0.3, 4},
		{3, 3, 1, 1},
		{0, 0.5, 1, 1},
	}

	e := mustCompile(t, "x")
	for _, tt := range tests {
		n, err := Candidates(tt.xmin, tt.xmax, tt.step)
		if err != nil {
			t.Fatalf("Candidates(%v,%v,%v): %v", tt.xmin, tt.xmax, tt.step, err)
		}
		if n != tt.want {
			t.Fatalf("Candidates(%v,%v,%v)=%d, want %d", tt.xmin, tt.xmax, tt.step, n, tt.want)
		}
		set, err := Run(e, Params{XMin: tt.xmin, XMax: tt.xmax, Step: tt.step, AutoY: true})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if set.Len()+len(set.Skipped) != tt.want {
			t.Fatalf("samples+skipped=%d, want %d", set.Len()+len(set.Skipped), tt.want)
		}
	}
}

func TestRun_InvalidInput(t *testing.T) {
	e := mustCompile(t, "x")
	tests := []struct {
		p    Params
		want error
	}{
		{Params{XMin: 0, XMax: 1, Step: 0, AutoY: true}, ErrInvalidStep},
		{Params{XMin: 0, XMax: 1, Step: -1, AutoY: true}, ErrInvalidStep},
		{Params{XMin: 0, XMax: 1, Step: math.NaN(), AutoY: true}, ErrInvalidStep},
		{Params{XMin: math.Inf(-1), XMax: 1, Step: 1, AutoY: true}, ErrInvalidDomain},
		{Params{XMin: 0, XMax: 1e9, Step: 1e-3, AutoY: true}, ErrTooManySamples},
		{Params{XMin: 0, XMax: 1, Step: 1, YMin: 2, YMax: 2}, ErrInvalidRange},
		{Params{XMin: 0, XMax: 1, Step: 1, YMin: 3, YMax: -3}, ErrInvalidRange},
	}

	for i, tt := range tests {
		set, err := Run(e, tt.p)
		if !errors.Is(err, tt.want) {
			t.Fatalf("case %d: err=%v, want %v", i, err, tt.want)
		}
		if set != nil {
			t.Fatalf("case %d: expected no partial result", i)
		}
	}
}

func TestRun_ReversedDomainIsEmpty(t *testing.T) {
	set, err := Run(mustCompile(t, "x"), Params{XMin: 5, XMax: -5, Step: 1, AutoY: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("len=%d, want 0", set.Len())
	}
	if set.YMin != -10 || set.YMax != 10 {
		t.Fatalf("range=[%v, %v], want [-10, 10]", set.YMin, set.YMax)
	}
}

func TestRun_AutoRangeFallbacks(t *testing.T) {
	tests := []struct {
		src        string
		wantLo, hi float64
	}{
		{src: "5", wantLo: -1, hi: 1},
		{src: "1/0", wantLo: -10, hi: 10},
		{src: "sqrt(-1 - x^2)", wantLo: -10, hi: 10},
		{src: "exp(1000 + x)", wantLo: -10, hi: 10},
	}

	for _, tt := range tests {
		set, err := Run(mustCompile(t, tt.src), Params{XMin: -3, XMax: 3, Step: 1, AutoY: true})
		if err != nil {
			t.Fatalf("Run(%q): %v", tt.src, err)
		}
		if set.YMin != tt.wantLo || set.YMax != tt.hi {
			t.Fatalf("%q range=[%v, %v], want [%v, %v]", tt.src, set.YMin, set.YMax, tt.wantLo, tt.hi)
		}
	}
}

func TestRun_AutoRangeCoversData(t *testing.T) {
	srcs := []string{"sin(x)", "x^3 - 2x", "exp(x)", "abs(x) - 7"}
	for _, src := range srcs {
		set, err := Run(mustCompile(t, src), Params{XMin: -4, XMax: 4, Step: 0.1, AutoY: true})
		if err != nil {
			t.Fatalf("Run(%q): %v", src, err)
		}
		if !(set.YMin < set.YMax) {
			t.Fatalf("%q: YMin=%v YMax=%v", src, set.YMin, set.YMax)
		}
		for _, s := range set.Samples {
			if s.Y < set.YMin || s.Y > set.YMax {
				t.Fatalf("%q: sample %v outside [%v, %v]", src, s, set.YMin, set.YMax)
			}
		}
	}
}

func TestRun_ManualRangeVerbatim(t *testing.T) {
	set, err := Run(mustCompile(t, "x^2"), Params{XMin: -2, XMax: 2, Step: 1, YMin: -3, YMax: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if set.YMin != -3 || set.YMax != 2 {
		t.Fatalf("range=[%v, %v], want [-3, 2]", set.YMin, set.YMax)
	}
	// Samples outside a manual range are kept.
	if set.Len() != 5 {
		t.Fatalf("len=%d, want 5", set.Len())
	}
}

func TestRun_Idempotent(t *testing.T) {
	e := mustCompile(t, "tan(x) + 1/(x-1)")
	p := Params{XMin: -3, XMax: 3, Step: 0.25, AutoY: true}
	a, err := Run(e, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(e, p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("sampling is not idempotent")
	}
}

func TestSampleSource_CompileErrorIsFatal(t *testing.T) {
	e, set, err := SampleSource("x +", Params{XMin: 0, XMax: 1, Step: 1, AutoY: true})
	if !errors.Is(err, expr.ErrParse) {
		t.Fatalf("err=%v, want parse error", err)
	}
	if e != nil || set != nil {
		t.Fatalf("expected no partial result")
	}
}

func TestRun_LastXStaysInDomain(t *testing.T) {
	set, err := Run(mustCompile(t, "x"), Params{XMin: 0, XMax: 0.3, Step: 0.1, AutoY: true})
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 4 {
		t.Fatalf("len=%d, want 4", set.Len())
	}
	for i, s := range set.Samples {
		if s.X > 0.3 {
			t.Fatalf("sample %d x=%v exceeds xmax", i, s.X)
		}
	}
	if last := set.Samples[set.Len()-1]; last.X != 0.3 || last.Y != 0.3 {
		t.Fatalf("last=%+v, want (0.3, 0.3)", last)
	}
}
