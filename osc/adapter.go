package osc

import (
	"fmt"
	"strconv"
)

// Marshaler is implemented by types that can describe themselves as an
// ordered list of OSC arguments.
type Marshaler interface {
	MarshalOSC() ([]Argument, error)
}

// Unmarshaler is implemented by types that can fill themselves from an
// ordered list of OSC arguments.
type Unmarshaler interface {
	UnmarshalOSC(args []Argument) error
}

// MarshalMessage builds a message for addr from the arguments of v.
func MarshalMessage(addr string, v Marshaler) (*Message, error) {
	if v == nil {
		return nil, newError("marshal", -1, ErrUnsupportedType, "nil Marshaler")
	}
	args, err := v.MarshalOSC()
	if err != nil {
		return nil, err
	}
	m := NewMessage(addr)
	if err = m.Append(args...); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalMessage fills v from the arguments of m.
func UnmarshalMessage(m *Message, v Unmarshaler) error {
	if m == nil {
		return newError("unmarshal", -1, ErrUnsupportedType, "nil *Message")
	}
	if v == nil {
		return newError("unmarshal", -1, ErrUnsupportedType, "nil Unmarshaler")
	}
	return v.UnmarshalOSC(m.Arguments)
}

// Field is a typed destination for one decoded argument.
type Field interface {
	TypeTag() TypeTag
	set(arg Argument) bool
}

type int32Field struct{ p *int32 }
type float32Field struct{ p *float32 }
type stringField struct{ p *string }
type blobField struct{ p *[]byte }

// Int32Field binds an 'i' argument to p.
func Int32Field(p *int32) Field { return int32Field{p} }

// Float32Field binds an 'f' argument to p.
func Float32Field(p *float32) Field { return float32Field{p} }

// StringField binds an 's' argument to p.
func StringField(p *string) Field { return stringField{p} }

// BlobField binds a 'b' argument to p.
func BlobField(p *[]byte) Field { return blobField{p} }

func (int32Field) TypeTag() TypeTag   { return TypeInt32 }
func (float32Field) TypeTag() TypeTag { return TypeFloat32 }
func (stringField) TypeTag() TypeTag  { return TypeString }
func (blobField) TypeTag() TypeTag    { return TypeBlob }

func (f int32Field) set(arg Argument) bool {
	v, ok := arg.(Int32)
	if ok {
		*f.p = int32(v)
	}
	return ok
}

func (f float32Field) set(arg Argument) bool {
	v, ok := arg.(Float32)
	if ok {
		*f.p = float32(v)
	}
	return ok
}

func (f stringField) set(arg Argument) bool {
	v, ok := arg.(String)
	if ok {
		*f.p = string(v)
	}
	return ok
}

func (f blobField) set(arg Argument) bool {
	v, ok := arg.(Blob)
	if ok {
		*f.p = []byte(v)
	}
	return ok
}

// Scan assigns args to fields in order. The number of arguments must match the
// number of fields and each argument must carry the field's type tag. Nothing
// is assigned on failure.
func Scan(args []Argument, fields ...Field) error {
	if len(args) != len(fields) {
		return newError("scan", -1, ErrFieldArityMismatch,
			fmt.Sprintf("%d arguments, %d fields", len(args), len(fields)))
	}
	for i, f := range fields {
		if got, want := ToTypeTag(args[i]), f.TypeTag(); got != want {
			err := newError("scan", -1, ErrFieldTypeMismatch,
				"want "+strconv.Quote(want.String())+", got "+strconv.Quote(got.String()))
			err.Argument = i
			return err
		}
	}
	for i, f := range fields {
		f.set(args[i])
	}
	return nil
}
