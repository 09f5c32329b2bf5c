package kernel

// Context provides task-local access to kernel operations for one Step.
type Context struct {
	k      *Kernel
	taskID TaskID

	blocked     bool
	blockOnTick bool
	blockOn     Endpoint
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Recv pops one message from the capability endpoint without blocking.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOn parks the task until a message is sent to the endpoint. It takes
// effect when Step returns.
func (c *Context) BlockOn(epCap Capability) {
	if !epCap.valid() || !epCap.canRecv() {
		return
	}
	c.blocked = true
	c.blockOnTick = false
	c.blockOn = epCap.ep
}

// BlockOnTick parks the task until the next Kernel.Tick call.
func (c *Context) BlockOnTick() {
	c.blocked = true
	c.blockOnTick = true
}

// NowTick returns the kernel tick count.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.Now()
}

// Send sends a message from one endpoint to another.
func (c *Context) Send(fromCap, toCap Capability, kind uint16, payload []byte) bool {
	return c.SendResult(fromCap, toCap, kind, payload) == SendOK
}

// SendResult sends a message and reports why it failed, if it did.
func (c *Context) SendResult(fromCap, toCap Capability, kind uint16, payload []byte) SendResult {
	if !fromCap.valid() {
		return SendErrInvalidFromCap
	}
	if !fromCap.canSend() {
		return SendErrFromNoSendRight
	}
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(fromCap.ep, toCap.ep, kind, payload)
}

// SendTo sends a message to the capability endpoint.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToResult(toCap, kind, payload) == SendOK
}

// SendToResult sends a message to the capability endpoint.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendToResult(toCap Capability, kind uint16, payload []byte) SendResult {
	if c.k == nil {
		return SendErrNoEndpoint
	}
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(0, toCap.ep, kind, payload)
}

// NewContext returns a context bound to k outside of a task step, for
// injecting messages from the host loop.
func (k *Kernel) NewContext() *Context {
	return &Context{k: k, taskID: maxTasks}
}
