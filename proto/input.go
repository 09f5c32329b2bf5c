package proto

import (
	"encoding/binary"

	"funcplot/hal"
)

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: hal.KeyCode
//   - u8: press
//   - u8: shift
//   - u32: rune
func KeyPayload(ev hal.KeyEvent) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(ev.Code))
	buf[2] = boolByte(ev.Press)
	buf[3] = boolByte(ev.Shift)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(ev.Rune))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (hal.KeyEvent, bool) {
	if len(b) < 8 {
		return hal.KeyEvent{}, false
	}
	return hal.KeyEvent{
		Code:  hal.KeyCode(binary.LittleEndian.Uint16(b[0:2])),
		Press: b[2] != 0,
		Shift: b[3] != 0,
		Rune:  rune(binary.LittleEndian.Uint32(b[4:8])),
	}, true
}

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i32: x
//   - i32: y
//   - u8: hal.PointerButton
func PointerPayload(ev hal.PointerEvent) []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(ev.X)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(ev.Y)))
	buf[8] = byte(ev.Button)
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(b []byte) (hal.PointerEvent, bool) {
	if len(b) < 9 {
		return hal.PointerEvent{}, false
	}
	return hal.PointerEvent{
		X:      int(int32(binary.LittleEndian.Uint32(b[0:4]))),
		Y:      int(int32(binary.LittleEndian.Uint32(b[4:8]))),
		Button: hal.PointerButton(b[8]),
	}, true
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
