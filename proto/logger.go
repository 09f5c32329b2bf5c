package proto

import "funcplot/hal"

// LogLinePayload encodes a MsgLogLine payload.
//
// Layout:
//   - u8: hal.LogLevel
//   - bytes: UTF-8 text without a trailing newline, truncated to max-1 bytes
func LogLinePayload(level hal.LogLevel, line string, max int) []byte {
	if max < 1 {
		max = 1
	}
	b := []byte(line)
	if len(b) > max-1 {
		b = b[:max-1]
	}
	buf := make([]byte, 1+len(b))
	buf[0] = byte(level)
	copy(buf[1:], b)
	return buf
}

// DecodeLogLinePayload decodes a LogLinePayload.
func DecodeLogLinePayload(b []byte) (level hal.LogLevel, line string, ok bool) {
	if len(b) < 1 {
		return 0, "", false
	}
	return hal.LogLevel(b[0]), string(b[1:]), true
}
