package proto

import (
	"testing"

	"funcplot/hal"
)

func TestPointerPayloadKeepsNegativeCoordinates(t *testing.T) {
	ev, ok := DecodePointerPayload(PointerPayload(hal.PointerEvent{X: -3, Y: 420, Button: hal.ButtonLeft}))
	if !ok || ev.X != -3 || ev.Y != 420 || ev.Button != hal.ButtonLeft {
		t.Fatalf("decoded %+v ok=%v", ev, ok)
	}
	if _, ok := DecodePointerPayload([]byte{1, 2}); ok {
		t.Fatalf("short payload decoded")
	}
}

func TestLogLinePayloadTruncates(t *testing.T) {
	b := LogLinePayload(hal.LogWarn, "0123456789", 5)
	if len(b) != 5 {
		t.Fatalf("len=%d, want 5", len(b))
	}
	level, line, ok := DecodeLogLinePayload(b)
	if !ok || level != hal.LogWarn || line != "0123" {
		t.Fatalf("decoded %s %q ok=%v", level, line, ok)
	}
}

func TestFieldSetRejectsUnknownField(t *testing.T) {
	if _, _, ok := DecodeFieldSetPayload([]byte{byte(FieldCount), 'x'}); ok {
		t.Fatalf("unknown field decoded")
	}
	f, text, ok := DecodeFieldSetPayload(FieldSetPayload(FieldStep, "0.25"))
	if !ok || f != FieldStep || text != "0.25" {
		t.Fatalf("decoded %s %q ok=%v", f, text, ok)
	}
}

func TestSelectPayloadClear(t *testing.T) {
	idx, ok := DecodeSelectPayload(SelectPayload(-1))
	if !ok || idx != -1 {
		t.Fatalf("decoded %d ok=%v", idx, ok)
	}
}

func TestKeyPayloadRune(t *testing.T) {
	in := hal.KeyEvent{Code: hal.KeyUnknown, Press: true, Rune: 'π'}
	ev, ok := DecodeKeyPayload(KeyPayload(in))
	if !ok || ev != in {
		t.Fatalf("decoded %+v ok=%v", ev, ok)
	}
}
