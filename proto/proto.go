// Package proto defines the kernel message kinds exchanged between the input
// service, the logger service and the plotter task, and their payload
// encodings.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgKey
	MsgPointer
	MsgExprSet
	MsgFieldSet
	MsgToggle
	MsgCalculate
	MsgSelect
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgKey:
		return "key"
	case MsgPointer:
		return "pointer"
	case MsgExprSet:
		return "expr_set"
	case MsgFieldSet:
		return "field_set"
	case MsgToggle:
		return "toggle"
	case MsgCalculate:
		return "calculate"
	case MsgSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Field names an editable form field.
type Field uint8

const (
	FieldExpr Field = iota
	FieldXMin
	FieldXMax
	FieldStep
	FieldYMin
	FieldYMax

	FieldCount
)

func (f Field) String() string {
	switch f {
	case FieldExpr:
		return "f(x)"
	case FieldXMin:
		return "xmin"
	case FieldXMax:
		return "xmax"
	case FieldStep:
		return "step"
	case FieldYMin:
		return "ymin"
	case FieldYMax:
		return "ymax"
	default:
		return "unknown"
	}
}

// Toggle names a boolean form switch.
type Toggle uint8

const (
	ToggleCurve Toggle = iota
	ToggleAutoY
)

func (t Toggle) String() string {
	switch t {
	case ToggleCurve:
		return "curve"
	case ToggleAutoY:
		return "auto_y"
	default:
		return "unknown"
	}
}
