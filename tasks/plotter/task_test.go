package plotter

import (
	"strings"
	"testing"

	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/plot/render"
	"funcplot/proto"
	logsvc "funcplot/services/logger"
)

type fbDisplay struct{ fb hal.Framebuffer }

func (d fbDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type memLogger struct{ lines []string }

func (m *memLogger) WriteLine(level hal.LogLevel, line string) {
	m.lines = append(m.lines, level.String()+" "+line)
}

func (m *memLogger) find(substr string) bool {
	for _, l := range m.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type harness struct {
	k    *kernel.Kernel
	fb   hal.Framebuffer
	log  *memLogger
	task *Task
	to   kernel.Capability
}

func newHarness(t *testing.T, s Settings) *harness {
	t.Helper()
	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	plotEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	w, h := FrameSize(render.DefaultCanvas)
	fb := hal.NewFramebuffer(w, h)
	mem := &memLogger{}

	task := New(fbDisplay{fb}, plotEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), Config{Settings: s})
	k.AddTask(logsvc.New(mem, logEP.Restrict(kernel.RightRecv), hal.LogDebug))
	k.AddTask(task)
	k.RunUntilIdle(50)

	return &harness{k: k, fb: fb, log: mem, task: task, to: plotEP.Restrict(kernel.RightSend)}
}

func (h *harness) send(t *testing.T, kind proto.Kind, payload []byte) {
	t.Helper()
	if res := h.k.NewContext().SendToResult(h.to, uint16(kind), payload); res != kernel.SendOK {
		t.Fatalf("send %v: %v", kind, res)
	}
	h.k.RunUntilIdle(50)
}

func (h *harness) presents() int {
	return h.fb.(interface{ Presents() int }).Presents()
}

func TestTaskDrawsInitialPlot(t *testing.T) {
	h := newHarness(t, settings("1/x", -1, 1, 0.5))
	st := h.task.Controller().State()
	if st.Set.Len() != 4 {
		t.Fatalf("samples=%d", st.Set.Len())
	}
	if h.presents() != 1 {
		t.Fatalf("presents=%d", h.presents())
	}
	if !h.log.find("debug skip x=0") {
		t.Fatalf("missing skip line: %v", h.log.lines)
	}
	if !h.log.find("info f(x)=") || !h.log.find("1 skipped") {
		t.Fatalf("missing summary: %v", h.log.lines)
	}
}

func TestTaskHandlesNamedEvents(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	st := h.task.Controller().State()

	h.send(t, proto.MsgExprSet, proto.ExprSetPayload("sin(x)"))
	h.send(t, proto.MsgFieldSet, proto.FieldSetPayload(proto.FieldStep, "0.5"))
	if st.Expr.Source() != "x^2" {
		t.Fatalf("editing recalculated: %s", st.Expr.Source())
	}

	h.send(t, proto.MsgCalculate, nil)
	if st.Expr.Source() != "sin(x)" || st.Set.Len() != 21 {
		t.Fatalf("expr=%s len=%d", st.Expr.Source(), st.Set.Len())
	}

	h.send(t, proto.MsgSelect, proto.SelectPayload(20))
	if st.Selected != 20 {
		t.Fatalf("selected=%d", st.Selected)
	}
	h.send(t, proto.MsgSelect, proto.SelectPayload(-7))
	if st.Selected != -1 {
		t.Fatalf("selected=%d", st.Selected)
	}

	calcs := st.Calcs
	h.send(t, proto.MsgToggle, proto.TogglePayload(proto.ToggleCurve, true))
	if !st.ShowCurve || st.Calcs != calcs {
		t.Fatalf("curve=%v calcs=%d", st.ShowCurve, st.Calcs)
	}
	h.send(t, proto.MsgToggle, proto.TogglePayload(proto.ToggleAutoY, false))
	if st.AutoY || st.Calcs != calcs+1 {
		t.Fatalf("autoY=%v calcs=%d", st.AutoY, st.Calcs)
	}
}

func TestTaskKeyboardEditing(t *testing.T) {
	h := newHarness(t, DefaultSettings())
	st := h.task.Controller().State()

	key := func(code hal.KeyCode, r rune) {
		h.send(t, proto.MsgKey, proto.KeyPayload(hal.KeyEvent{Code: code, Press: true, Rune: r}))
	}
	for i := 0; i < 3; i++ {
		key(hal.KeyBackspace, 0)
	}
	for _, r := range "x+1" {
		key(hal.KeyUnknown, r)
	}
	key(hal.KeyEnter, 0)
	if st.Expr.Source() != "x+1" {
		t.Fatalf("expr=%q", st.Expr.Source())
	}

	key(hal.KeyTab, 0)
	if st.Focus != proto.FieldXMin {
		t.Fatalf("focus=%v", st.Focus)
	}
	key(hal.KeyF1, 0)
	if !st.ShowCurve {
		t.Fatalf("F1 did not toggle the curve")
	}

	h.send(t, proto.MsgSelect, proto.SelectPayload(1))
	key(hal.KeyEscape, 0)
	if st.Selected != -1 {
		t.Fatalf("escape kept selection")
	}

	key(hal.KeyBackspace, 0)
	key(hal.KeyBackspace, 0)
	key(hal.KeyUnknown, 'q')
	key(hal.KeyEnter, 0)
	if st.LastErr == nil || !strings.Contains(st.Status, "xmin") {
		t.Fatalf("status=%q", st.Status)
	}
	if !h.log.find("warn calculate") {
		t.Fatalf("missing warning: %v", h.log.lines)
	}
}

func TestTaskPointerSelects(t *testing.T) {
	h := newHarness(t, settings("x", -2, 2, 1))
	st := h.task.Controller().State()

	vp := h.task.view.Plot.Viewport(st.Set)
	px, py := int(vp.MapX(0)), int(vp.MapY(0))
	h.send(t, proto.MsgPointer, proto.PointerPayload(hal.PointerEvent{X: px, Y: py, Button: hal.ButtonLeft}))
	if st.Selected != 2 {
		t.Fatalf("selected=%d", st.Selected)
	}
	h.send(t, proto.MsgPointer, proto.PointerPayload(hal.PointerEvent{X: 5, Y: 5, Button: hal.ButtonRight}))
	if st.Selected != 2 {
		t.Fatalf("right click changed selection")
	}
	if !h.log.find("selected #2") {
		t.Fatalf("missing selection log: %v", h.log.lines)
	}
}

func TestTaskWithoutDisplay(t *testing.T) {
	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	mem := &memLogger{}
	k.AddTask(logsvc.New(mem, logEP.Restrict(kernel.RightRecv), hal.LogDebug))
	id := k.AddTask(New(nil, ep.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), Config{Settings: DefaultSettings()}))
	k.RunUntilIdle(20)
	if !k.Alive(id) || !mem.find("drawing disabled") {
		t.Fatalf("alive=%v lines=%v", k.Alive(id), mem.lines)
	}
}
