package plotter

import (
	"funcplot/client/logger"
	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/plot/expr"
	"funcplot/plot/render"
	"funcplot/proto"
)

// maxSkipLogs bounds the per-sample debug lines sent after a calculation so
// they fit in the logger mailbox next to the summary line.
const maxSkipLogs = 5

// Config configures the plotter task.
type Config struct {
	Settings Settings
	Canvas   render.Canvas
	// Compiler is shared with other users of the expression cache; nil
	// creates one.
	Compiler *expr.Compiler
}

type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	ctrl *Controller
	view *View

	started  bool
	dirty    bool
	lastCalc uint64
}

func New(disp hal.Display, ep, logCap kernel.Capability, cfg Config) *Task {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		cfg.Canvas = render.DefaultCanvas
	}
	return &Task{
		disp:   disp,
		ep:     ep,
		logCap: logCap,
		cfg:    cfg,
		ctrl:   NewController(cfg.Compiler, cfg.Settings),
	}
}

// Controller exposes the task's controller, mainly for tests and the
// headless commands.
func (t *Task) Controller() *Controller { return t.ctrl }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		t.started = true
		t.init(ctx)
	}
	for {
		msg, ok := ctx.Recv(t.ep)
		if !ok {
			break
		}
		t.handle(ctx, msg)
	}
	t.logCalculation(ctx)
	if t.dirty && t.view != nil {
		t.dirty = false
		if err := t.view.Draw(t.ctrl.State()); err != nil {
			_ = logger.Warnf(ctx, t.logCap, "plotter: present: %v", err)
		}
	}
	ctx.BlockOn(t.ep)
}

func (t *Task) init(ctx *kernel.Context) {
	if t.disp != nil {
		if fb := t.disp.Framebuffer(); fb != nil {
			t.view = NewView(render.NewDisplay(fb), t.cfg.Canvas)
			t.ctrl.SetView(t.view)
		}
	}
	if t.view == nil {
		_ = logger.Warnf(ctx, t.logCap, "plotter: no framebuffer, drawing disabled")
	}
	_ = t.ctrl.Calculate()
	t.dirty = true
}

func (t *Task) handle(ctx *kernel.Context, msg kernel.Message) {
	payload := msg.Payload()
	switch proto.Kind(msg.Kind) {
	case proto.MsgKey:
		ev, ok := proto.DecodeKeyPayload(payload)
		if !ok {
			return
		}
		t.handleKey(ev)

	case proto.MsgPointer:
		ev, ok := proto.DecodePointerPayload(payload)
		if !ok || ev.Button != hal.ButtonLeft {
			return
		}
		res, _ := t.ctrl.Click(ev.X, ev.Y)
		if res == ClickPlot || res == ClickTable {
			t.logSelection(ctx)
		}

	case proto.MsgExprSet:
		t.ctrl.SetExpression(proto.DecodeExprSetPayload(payload))

	case proto.MsgFieldSet:
		f, text, ok := proto.DecodeFieldSetPayload(payload)
		if !ok {
			return
		}
		t.ctrl.SetField(f, text)

	case proto.MsgToggle:
		tg, on, ok := proto.DecodeTogglePayload(payload)
		if !ok {
			return
		}
		switch tg {
		case proto.ToggleCurve:
			t.ctrl.SetShowCurve(on)
		case proto.ToggleAutoY:
			_ = t.ctrl.SetAutoY(on)
		default:
			return
		}

	case proto.MsgCalculate:
		_ = t.ctrl.Calculate()

	case proto.MsgSelect:
		i, ok := proto.DecodeSelectPayload(payload)
		if !ok {
			return
		}
		t.ctrl.Select(i)
		t.logSelection(ctx)

	default:
		return
	}
	t.dirty = true
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	c := t.ctrl
	switch ev.Code {
	case hal.KeyTab:
		if ev.Shift {
			c.FocusNext(-1)
		} else {
			c.FocusNext(1)
		}
	case hal.KeyUp:
		c.FocusNext(-1)
	case hal.KeyDown:
		c.FocusNext(1)
	case hal.KeyLeft:
		c.MoveCursor(-1)
	case hal.KeyRight:
		c.MoveCursor(1)
	case hal.KeyHome:
		c.CursorHome()
	case hal.KeyEnd:
		c.CursorEnd()
	case hal.KeyBackspace:
		c.Backspace()
	case hal.KeyDelete:
		c.DeleteForward()
	case hal.KeyEnter:
		_ = c.Calculate()
	case hal.KeyF1:
		_ = c.Toggle(proto.ToggleCurve)
	case hal.KeyF2:
		_ = c.Toggle(proto.ToggleAutoY)
	case hal.KeyEscape:
		c.Select(-1)
	case hal.KeyUnknown:
		if ev.Rune != 0 {
			c.InsertRune(ev.Rune)
		}
	}
}

// logCalculation reports the latest calculation once: skipped samples at
// debug level, then a summary line.
func (t *Task) logCalculation(ctx *kernel.Context) {
	st := t.ctrl.State()
	if st.Calcs == t.lastCalc {
		return
	}
	t.lastCalc = st.Calcs

	src := st.Form[proto.FieldExpr]
	if st.LastErr != nil {
		_ = logger.Warnf(ctx, t.logCap, "calculate %q: %v", src, st.LastErr)
		return
	}
	set := st.Set
	for i, sk := range set.Skipped {
		if i == maxSkipLogs {
			_ = logger.Debugf(ctx, t.logCap, "... %d more skipped", len(set.Skipped)-i)
			break
		}
		_ = logger.Debugf(ctx, t.logCap, "skip x=%g: %v", sk.X, sk.Err)
	}
	_ = logger.Infof(ctx, t.logCap, "f(x)=%s: %s, y in [%.3g, %.3g]", st.Expr, st.Status, set.YMin, set.YMax)
}

func (t *Task) logSelection(ctx *kernel.Context) {
	st := t.ctrl.State()
	s, ok := st.Set.At(st.Selected)
	if !ok {
		_ = logger.Debugf(ctx, t.logCap, "selection cleared")
		return
	}
	_ = logger.Debugf(ctx, t.logCap, "selected #%d (%.2f, %.2f)", st.Selected, s.X, s.Y)
}
