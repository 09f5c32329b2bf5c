// Package logger is the task-side client of the logger service.
package logger

import (
	"fmt"

	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, level hal.LogLevel, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.LogLinePayload(level, line, kernel.MaxMessageBytes)
	return ctx.SendToResult(logCap, uint16(proto.MsgLogLine), payload)
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, level hal.LogLevel, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, level, fmt.Sprintf(format, args...))
}

func Debugf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Logf(ctx, logCap, hal.LogDebug, format, args...)
}

func Infof(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Logf(ctx, logCap, hal.LogInfo, format, args...)
}

func Warnf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Logf(ctx, logCap, hal.LogWarn, format, args...)
}

func Errorf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Logf(ctx, logCap, hal.LogError, format, args...)
}
