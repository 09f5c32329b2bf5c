package kernel

import "runtime/debug"

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler called when a task panics. The task
// is then never stepped again; other tasks keep running.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.onPanic = fn
}

func (k *Kernel) runStep(id TaskID, t Task, ctx *Context) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			ok = false
			if k.onPanic != nil {
				k.onPanic(PanicInfo{TaskID: id, Value: v, Stack: debug.Stack()})
			}
		}
	}()
	t.Step(ctx)
	return true
}
