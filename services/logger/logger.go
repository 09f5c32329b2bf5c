// Package logger drains MsgLogLine messages into the HAL logger.
package logger

import (
	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/proto"
)

type Service struct {
	log hal.Logger
	ep  kernel.Capability
	min hal.LogLevel
}

// New returns a logger service that forwards lines at or above min.
func New(log hal.Logger, ep kernel.Capability, min hal.LogLevel) *Service {
	return &Service{log: log, ep: ep, min: min}
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			break
		}
		if s.log == nil || msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		level, line, ok := proto.DecodeLogLinePayload(msg.Payload())
		if !ok || level < s.min {
			continue
		}
		s.log.WriteLine(level, line)
	}
	ctx.BlockOn(s.ep)
}
