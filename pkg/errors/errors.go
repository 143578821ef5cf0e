// Package errors provides structured error reporting for the property grid
// and its native handlers.
//
// Most failures inside the control layer are not returned to the caller: a
// property getter that panics during reload, or a conversion that fails while
// committing an edit, leaves the displayed value untouched. Those failures are
// reported here instead so that applications can log or surface them.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNative indicates a native handler or bridge error.
	KindNative
	// KindReflect indicates a failure reading or writing a bound property.
	KindReflect
	// KindConvert indicates a value could not be converted between the Go
	// and native representations.
	KindConvert
	// KindValidate indicates a value was rejected by a validator.
	KindValidate
	// KindConfig indicates an override file could not be loaded or applied.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindReflect:
		return "reflect"
	case KindConvert:
		return "convert"
	case KindValidate:
		return "validate"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PropGridError represents a structured error in the control layer.
type PropGridError struct {
	// Op is the operation that failed (e.g., "propgrid.ReloadPropertyValue").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Property is the qualified property name ("Type.Field"), if applicable.
	Property string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PropGridError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("%s [%s] property=%s: %v", e.Op, e.Kind, e.Property, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PropGridError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked.
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConvertError describes a value that could not be converted.
type ConvertError struct {
	// From is the source value.
	From any
	// To is the target type name.
	To string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ConvertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %T(%v) to %s: %v", e.From, e.From, e.To, e.Err)
	}
	return fmt.Sprintf("cannot convert %T(%v) to %s", e.From, e.From, e.To)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the control layer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *PropGridError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
