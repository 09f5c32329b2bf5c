// Package kernel is a cooperative single-goroutine scheduler with fixed-size
// mailboxes. Tasks run one Step at a time and park themselves on an endpoint
// or on the next tick.
package kernel

const (
	maxTasks     = 32
	maxEndpoints = 32
)

type TaskID uint8

// Task is a cooperative unit of execution.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
	dead     bool
	waiting  Endpoint
}

// Kernel is a minimal cooperative scheduler plus IPC router.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	tick         uint64
	tickWaitMask uint32

	onPanic func(PanicInfo)
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and returns its ID.
func (k *Kernel) AddTask(t Task) TaskID {
	if k.taskCount >= maxTasks {
		return 0
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id
}

// Step runs at most one runnable task step. It reports whether a task ran.
func (k *Kernel) Step() bool {
	if k.taskCount == 0 {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable || st.dead {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		if !k.runStep(id, st.task, ctx) {
			st.dead = true
			st.runnable = false
			return true
		}

		if ctx.blocked {
			st.runnable = false
			if ctx.blockOnTick {
				k.tickWaitMask |= 1 << id
			} else {
				st.waiting = ctx.blockOn
				if st.waiting < k.endpointCount {
					ep := &k.endpoints[st.waiting]
					if ep.q.len() > 0 {
						// A message arrived during the step.
						st.runnable = true
					} else {
						ep.waitMask |= 1 << id
					}
				}
			}
		}
		return true
	}
	return false
}

// RunUntilIdle steps until no task is runnable or max steps have run, and
// returns the number of steps taken.
func (k *Kernel) RunUntilIdle(max int) int {
	n := 0
	for n < max && k.Step() {
		n++
	}
	return n
}

// Tick advances the kernel clock and wakes tasks blocked via
// Context.BlockOnTick.
func (k *Kernel) Tick() {
	k.tick++
	wait := k.tickWaitMask
	if wait == 0 {
		return
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if !k.tasks[tid].dead {
			k.tasks[tid].runnable = true
		}
	}
	k.tickWaitMask = 0
}

// Now returns the number of ticks seen so far.
func (k *Kernel) Now() uint64 { return k.tick }

// Alive reports whether task id has not panicked.
func (k *Kernel) Alive(id TaskID) bool {
	if id >= k.taskCount {
		return false
	}
	return !k.tasks[id].dead
}

func (k *Kernel) send(from Endpoint, to Endpoint, kind uint16, payload []byte) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if !k.tasks[tid].dead {
			k.tasks[tid].runnable = true
		}
		ep.waitMask &^= 1 << tid
	}
	return SendOK
}

func (k *Kernel) recv(to Endpoint) (Message, bool) {
	if to >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[to].q.pop()
}
