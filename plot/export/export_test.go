package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"funcplot/plot/sampler"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want string
		err  error
	}{
		{"plot.png", "png", nil},
		{"out/Plot.SVG", "svg", nil},
		{"a.b.pdf", "pdf", nil},
		{"plot.gif", "", ErrUnsupportedFormat},
		{"plot", "", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if !errors.Is(err, tt.err) || got != tt.want {
			t.Fatalf("FormatOf(%q)=%q, %v; want %q, %v", tt.path, got, err, tt.want, tt.err)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	e, set, err := sampler.SampleSource("tan(x)", sampler.Params{XMin: 0, XMax: 3, Step: 0.5, AutoY: true})
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.ShowCurve = true
	opts.Selected = 2

	var buf bytes.Buffer
	if err := Write(&buf, set, e, opts, "svg"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("not an svg document: %.80q", out)
	}
	if !strings.Contains(out, "y = tan(x)") {
		t.Fatalf("title missing")
	}
	if !strings.Contains(out, "(1.00, 1.56)") {
		t.Fatalf("selection legend missing")
	}
}

func TestSavePNG(t *testing.T) {
	e, set, err := sampler.SampleSource("1/x", sampler.Params{XMin: -1, XMax: 1, Step: 0.5, AutoY: true})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "plot.png")
	if err := Save(set, e, DefaultOptions(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("not a png file")
	}
}

func TestBuildRejectsMissingSet(t *testing.T) {
	if _, err := Build(nil, nil, DefaultOptions()); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("err=%v", err)
	}
	if err := Save(&sampler.SampleSet{}, nil, DefaultOptions(), "x.bmp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err=%v", err)
	}
}

func TestSampleXYsSkipsInfinity(t *testing.T) {
	_, set, err := sampler.SampleSource("exp(x)", sampler.Params{XMin: 0, XMax: 1000, Step: 500, AutoY: true})
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 3 {
		t.Fatalf("samples=%d", set.Len())
	}
	if got := len(sampleXYs(set.Samples)); got != 2 {
		t.Fatalf("finite points=%d, want 2", got)
	}
}
