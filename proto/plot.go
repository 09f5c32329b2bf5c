package proto

import "encoding/binary"

// ExprSetPayload encodes a MsgExprSet payload: the expression text.
func ExprSetPayload(text string) []byte {
	return []byte(text)
}

// DecodeExprSetPayload decodes an ExprSetPayload.
func DecodeExprSetPayload(b []byte) string {
	return string(b)
}

// FieldSetPayload encodes a MsgFieldSet payload.
//
// Layout:
//   - u8: Field
//   - bytes: UTF-8 field text
func FieldSetPayload(f Field, text string) []byte {
	buf := make([]byte, 1+len(text))
	buf[0] = byte(f)
	copy(buf[1:], text)
	return buf
}

// DecodeFieldSetPayload decodes a FieldSetPayload.
func DecodeFieldSetPayload(b []byte) (f Field, text string, ok bool) {
	if len(b) < 1 || Field(b[0]) >= FieldCount {
		return 0, "", false
	}
	return Field(b[0]), string(b[1:]), true
}

// TogglePayload encodes a MsgToggle payload.
//
// Layout:
//   - u8: Toggle
//   - u8: on
func TogglePayload(t Toggle, on bool) []byte {
	return []byte{byte(t), boolByte(on)}
}

// DecodeTogglePayload decodes a TogglePayload.
func DecodeTogglePayload(b []byte) (t Toggle, on bool, ok bool) {
	if len(b) != 2 {
		return 0, false, false
	}
	return Toggle(b[0]), b[1] != 0, true
}

// SelectPayload encodes a MsgSelect payload.
//
// Layout (little-endian):
//   - i32: sample index, -1 clears the selection
func SelectPayload(index int) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(int32(index)))
	return buf
}

// DecodeSelectPayload decodes a SelectPayload.
func DecodeSelectPayload(b []byte) (index int, ok bool) {
	if len(b) < 4 {
		return 0, false
	}
	return int(int32(binary.LittleEndian.Uint32(b[0:4]))), true
}
