package interp

import "strconv"

// Kind discriminates the payload of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNative
	KindClass
	KindInstance
)

// Value is one runtime value. Kind selects which payload field is live; the
// zero Value is nil.
type Value struct {
	Kind     Kind
	Bool     bool
	Num      float64
	Str      string
	Fn       *Function
	Native   *Native
	Class    *Class
	Instance *Instance
}

func NilValue() Value             { return Value{} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }

func FunctionValue(f *Function) Value { return Value{Kind: KindFunction, Fn: f} }
func NativeValue(n *Native) Value     { return Value{Kind: KindNative, Native: n} }
func ClassValue(c *Class) Value       { return Value{Kind: KindClass, Class: c} }
func InstanceValue(i *Instance) Value { return Value{Kind: KindInstance, Instance: i} }

// Truthy reports how a value reads as a condition: nil and false are falsy,
// everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal;
// functions, classes, and instances compare by identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Num == b.Num
	case KindString:
		return a.Str == b.Str
	case KindFunction:
		return a.Fn == b.Fn
	case KindNative:
		return a.Native == b.Native
	case KindClass:
		return a.Class == b.Class
	case KindInstance:
		return a.Instance == b.Instance
	}
	return false
}

// String renders a value the way print shows it.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindFunction:
		return "<user defined> fn"
	case KindNative:
		return "native fn"
	case KindClass:
		return v.Class.Name
	case KindInstance:
		return v.Instance.class.Name + " instance"
	}
	return "nil"
}
