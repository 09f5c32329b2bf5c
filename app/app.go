// Package app wires the kernel, the services and the plotter task onto a
// HAL and exposes the per-frame step function the host runners call.
package app

import (
	"errors"

	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/plot/expr"
	"funcplot/plot/render"
	"funcplot/services/input"
	"funcplot/services/logger"
	"funcplot/tasks/plotter"
)

// ErrPlotterDied is returned by Step once the plotter task has panicked.
var ErrPlotterDied = errors.New("plotter task stopped after a panic")

// defaultStepBudget bounds kernel steps per host frame.
const defaultStepBudget = 256

type Config struct {
	Settings plotter.Settings
	Canvas   render.Canvas
	LogLevel hal.LogLevel
	// Compiler is the shared expression cache; nil creates one.
	Compiler   *expr.Compiler
	StepBudget int
}

// System is one running instance of the plotter on a HAL.
type System struct {
	k      *kernel.Kernel
	ticks  <-chan uint64
	budget int

	plot   *plotter.Task
	plotID kernel.TaskID
	input  *input.Service
}

// New builds the system. Nothing runs until the first Step.
func New(h hal.HAL, cfg Config) *System {
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = defaultStepBudget
	}
	if cfg.Compiler == nil {
		cfg.Compiler = expr.NewCompiler(0)
	}

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	plotEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s := &System{k: k, budget: cfg.StepBudget}
	names := make(map[kernel.TaskID]string)

	names[k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv), cfg.LogLevel))] = "logger"

	s.input = input.New(h.Input(), plotEP.Restrict(kernel.RightSend))
	names[k.AddTask(s.input)] = "input"

	s.plot = plotter.New(h.Display(), plotEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), plotter.Config{
		Settings: cfg.Settings,
		Canvas:   cfg.Canvas,
		Compiler: cfg.Compiler,
	})
	s.plotID = k.AddTask(s.plot)
	names[s.plotID] = "plotter"

	k.SetPanicHandler(panicHandler(h, names))

	if ht := h.Time(); ht != nil {
		s.ticks = ht.Ticks()
	}
	return s
}

// Runner adapts New to the hal runners.
func Runner(cfg Config) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		return New(h, cfg).Step
	}
}

// Step advances the kernel clock by the host ticks seen since the last call
// and runs tasks until they are idle or the step budget is spent.
func (s *System) Step() error {
	if s.drainTicks() {
		s.k.Tick()
	}
	s.k.RunUntilIdle(s.budget)
	if !s.k.Alive(s.plotID) {
		return ErrPlotterDied
	}
	return nil
}

// drainTicks consumes every pending host tick; several ticks per frame are
// folded into one kernel tick.
func (s *System) drainTicks() bool {
	if s.ticks == nil {
		return true
	}
	got := false
	for {
		select {
		case _, ok := <-s.ticks:
			if !ok {
				s.ticks = nil
				return true
			}
			got = true
		default:
			return got
		}
	}
}

// Plotter returns the plotter task.
func (s *System) Plotter() *plotter.Task { return s.plot }

// Kernel returns the scheduler, for tests.
func (s *System) Kernel() *kernel.Kernel { return s.k }
