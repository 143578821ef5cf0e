package propgrid

import (
	"reflect"
	"time"

	"github.com/go-drift/propgrid/pkg/platform"
)

// ValueKind is the closed set of value kinds the grid can edit.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindDateTime
	KindDuration
	KindEnum
	KindFlags
	KindObject
	KindCategory
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBool:     "bool",
	KindInt:      "int",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint:     "uint",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindString:   "string",
	KindDateTime: "datetime",
	KindDuration: "duration",
	KindEnum:     "enum",
	KindFlags:    "flags",
	KindObject:   "object",
	KindCategory: "category",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsSigned reports whether k is a signed integer kind.
func (k ValueKind) IsSigned() bool {
	return k >= KindInt && k <= KindInt64
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k ValueKind) IsUnsigned() bool {
	return k >= KindUint && k <= KindUint64
}

// IsFloat reports whether k is a floating point kind.
func (k ValueKind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsNumeric reports whether k holds a number.
func (k ValueKind) IsNumeric() bool {
	return k.IsSigned() || k.IsUnsigned() || k.IsFloat()
}

// Editor returns the native editor used for k.
func (k ValueKind) Editor() platform.EditorKind {
	switch {
	case k == KindBool:
		return platform.EditorBool
	case k.IsSigned():
		return platform.EditorInt
	case k.IsUnsigned():
		return platform.EditorUint
	case k.IsFloat():
		return platform.EditorFloat
	}
	switch k {
	case KindString:
		return platform.EditorString
	case KindDateTime:
		return platform.EditorDate
	case KindDuration:
		return platform.EditorDuration
	case KindEnum:
		return platform.EditorEnum
	case KindFlags:
		return platform.EditorFlags
	case KindObject:
		return platform.EditorObject
	case KindCategory:
		return platform.EditorCategory
	}
	return ""
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	enumType     = reflect.TypeOf((*Enum)(nil)).Elem()
	flagsType    = reflect.TypeOf((*FlagsEnum)(nil)).Elem()
)

var basicKinds = map[reflect.Kind]ValueKind{
	reflect.Bool:    KindBool,
	reflect.Int:     KindInt,
	reflect.Int8:    KindInt8,
	reflect.Int16:   KindInt16,
	reflect.Int32:   KindInt32,
	reflect.Int64:   KindInt64,
	reflect.Uint:    KindUint,
	reflect.Uint8:   KindUint8,
	reflect.Uint16:  KindUint16,
	reflect.Uint32:  KindUint32,
	reflect.Uint64:  KindUint64,
	reflect.Float32: KindFloat32,
	reflect.Float64: KindFloat64,
	reflect.String:  KindString,
	reflect.Struct:  KindObject,
}

// KindOf resolves the editor kind of a Go type. Types the grid cannot edit
// (channels, funcs, maps, slices, interfaces) resolve to KindInvalid.
func KindOf(t reflect.Type) ValueKind {
	if t == nil {
		return KindInvalid
	}
	switch t {
	case timeType:
		return KindDateTime
	case durationType:
		return KindDuration
	}
	if isIntegerKind(t.Kind()) && t.Implements(enumType) {
		if t.Implements(flagsType) && reflect.Zero(t).Interface().(FlagsEnum).IsFlags() {
			return KindFlags
		}
		return KindEnum
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct && t.Elem() != timeType {
		return KindObject
	}
	if k, ok := basicKinds[t.Kind()]; ok {
		return k
	}
	return KindInvalid
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
