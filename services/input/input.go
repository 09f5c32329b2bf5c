// Package input turns HAL keyboard and pointer events into kernel messages
// for one consumer endpoint.
package input

import (
	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/proto"
)

// perStep bounds how many events one Step forwards.
const perStep = 16

type pending struct {
	kind    proto.Kind
	payload []byte
}

type Service struct {
	kbd hal.Keyboard
	ptr hal.Pointer
	out kernel.Capability

	held    *pending
	dropped int
}

func New(in hal.Input, out kernel.Capability) *Service {
	s := &Service{out: out}
	if in != nil {
		s.kbd = in.Keyboard()
		s.ptr = in.Pointer()
	}
	return s
}

// Dropped returns how many events were discarded because of a send error
// other than a full queue.
func (s *Service) Dropped() int { return s.dropped }

func (s *Service) Step(ctx *kernel.Context) {
	defer ctx.BlockOnTick()

	for i := 0; i < perStep; i++ {
		if s.held == nil {
			s.held = s.poll()
			if s.held == nil {
				return
			}
		}
		switch res := ctx.SendToResult(s.out, uint16(s.held.kind), s.held.payload); res {
		case kernel.SendOK:
			s.held = nil
		case kernel.SendErrQueueFull:
			// Keep the event and retry on the next tick.
			return
		default:
			s.held = nil
			s.dropped++
		}
	}
}

func (s *Service) poll() *pending {
	if s.ptr != nil {
		select {
		case ev := <-s.ptr.Events():
			return &pending{kind: proto.MsgPointer, payload: proto.PointerPayload(ev)}
		default:
		}
	}
	if s.kbd != nil {
		for {
			select {
			case ev := <-s.kbd.Events():
				if !ev.Press {
					continue
				}
				return &pending{kind: proto.MsgKey, payload: proto.KeyPayload(ev)}
			default:
				return nil
			}
		}
	}
	return nil
}
