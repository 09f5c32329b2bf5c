package hal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestRGB565RoundTripPrimaries(t *testing.T) {
	tests := []struct {
		r, g, b uint8
	}{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := RGB888From565(RGB565(tt.r, tt.g, tt.b))
		if r != tt.r || g != tt.g || b != tt.b {
			t.Fatalf("round trip (%d,%d,%d) -> (%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func TestFramebufferClearAndSnapshot(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if fb.StrideBytes() != 8 || len(fb.Buffer()) != 24 {
		t.Fatalf("stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	fb.ClearRGB(255, 0, 0)

	img := Snapshot(fb)
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds=%v", img.Bounds())
	}
	c := img.RGBAAt(3, 2)
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Fatalf("pixel=%v, want opaque red", c)
	}
}

func TestFramebufferCountsPresents(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	_ = fb.Present()
	_ = fb.Present()
	if fb.Presents() != 2 {
		t.Fatalf("presents=%d", fb.Presents())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", LogDebug, true},
		{" INFO ", LogInfo, true},
		{"", LogInfo, true},
		{"warning", LogWarn, true},
		{"error", LogError, true},
		{"loud", LogInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseLogLevel(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLogLevel(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPrettyHandlerFiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
		NoColor:  true,
	})
	log := NewSlogLogger(slog.New(h).With("task", "plotter"))

	log.WriteLine(LogDebug, "hidden")
	log.WriteLine(LogWarn, "skipped 1 of 5 samples")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN: skipped 1 of 5 samples task=plotter") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one line, got %q", out)
	}
}

func TestHeadlessInputChannelsDropWhenFull(t *testing.T) {
	h := newHostHAL(Options{Width: 10, Height: 10})
	for i := 0; i < 100; i++ {
		h.ptr.emit(PointerEvent{X: i, Y: i, Button: ButtonLeft})
		h.kbd.emit(KeyEvent{Code: KeyEnter, Press: true})
	}
	if got := len(h.ptr.ch); got != cap(h.ptr.ch) {
		t.Fatalf("pointer queue len=%d, want %d", got, cap(h.ptr.ch))
	}
	if got := len(h.kbd.ch); got != cap(h.kbd.ch) {
		t.Fatalf("keyboard queue len=%d, want %d", got, cap(h.kbd.ch))
	}
	if h.Display().Framebuffer().Width() != 10 {
		t.Fatalf("framebuffer width=%d", h.Display().Framebuffer().Width())
	}
}

func TestHostTimeKeepsLatestFrame(t *testing.T) {
	ht := newHostTime()
	base := time.Unix(100, 0)
	now := base
	ht.now = func() time.Time { return now }

	ht.frame()
	now = base.Add(16 * time.Millisecond)
	ht.frame()
	now = base.Add(33 * time.Millisecond)
	ht.frame()

	if got := len(ht.Ticks()); got != 1 {
		t.Fatalf("pending ticks=%d, want 1", got)
	}
	if got := <-ht.Ticks(); got != 33 {
		t.Fatalf("tick=%d, want 33", got)
	}
}
