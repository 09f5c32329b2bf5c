package hal

import "time"

// hostTime publishes the milliseconds elapsed since the first frame, once
// per frame. A consumer that falls behind only sees the latest value.
type hostTime struct {
	ch    chan uint64
	start time.Time
	now   func() time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) frame() {
	now := t.now()
	if t.start.IsZero() {
		t.start = now
	}
	ms := uint64(now.Sub(t.start) / time.Millisecond)
	select {
	case <-t.ch:
	default:
	}
	select {
	case t.ch <- ms:
	default:
	}
}
