package input

import (
	"testing"

	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/proto"
)

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeInput struct {
	kbd fakeKeyboard
	ptr fakePointer
}

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }
func (in fakeInput) Pointer() hal.Pointer   { return in.ptr }

func newFakeInput() fakeInput {
	return fakeInput{
		kbd: fakeKeyboard{ch: make(chan hal.KeyEvent, 64)},
		ptr: fakePointer{ch: make(chan hal.PointerEvent, 64)},
	}
}

func drain(ctx *kernel.Context, ep kernel.Capability) []kernel.Message {
	var out []kernel.Message
	for {
		msg, ok := ctx.Recv(ep)
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

func TestServiceForwardsPressesAndClicks(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	in := newFakeInput()
	k.AddTask(New(in, ep.Restrict(kernel.RightSend)))

	in.ptr.ch <- hal.PointerEvent{X: 10, Y: 20, Button: hal.ButtonLeft}
	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyEnter, Press: false}
	k.RunUntilIdle(10)

	msgs := drain(k.NewContext(), ep)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if proto.Kind(msgs[0].Kind) != proto.MsgPointer {
		t.Fatalf("first kind=%s", proto.Kind(msgs[0].Kind))
	}
	ev, ok := proto.DecodeKeyPayload(msgs[1].Payload())
	if !ok || ev.Code != hal.KeyEnter || !ev.Press {
		t.Fatalf("key=%+v ok=%v", ev, ok)
	}
}

func TestServiceHoldsEventWhenQueueFull(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	in := newFakeInput()
	svc := New(in, ep.Restrict(kernel.RightSend))
	k.AddTask(svc)

	for i := 0; i < 10; i++ {
		in.kbd.ch <- hal.KeyEvent{Press: true, Rune: rune('a' + i)}
	}
	k.RunUntilIdle(10)

	ctx := k.NewContext()
	first := drain(ctx, ep)
	if len(first) != 8 {
		t.Fatalf("first batch=%d, want a full mailbox", len(first))
	}

	k.Tick()
	k.RunUntilIdle(10)
	rest := drain(ctx, ep)
	if len(rest) != 2 {
		t.Fatalf("second batch=%d, want 2", len(rest))
	}
	ev, _ := proto.DecodeKeyPayload(rest[1].Payload())
	if ev.Rune != 'j' {
		t.Fatalf("last rune=%q, want 'j'", ev.Rune)
	}
	if svc.Dropped() != 0 {
		t.Fatalf("dropped=%d", svc.Dropped())
	}
}
