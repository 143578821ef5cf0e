package propgrid

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"gopkg.in/Knetic/govaluate.v3"
)

// ErrInvalidValue is wrapped by every validation failure.
var ErrInvalidValue = errors.New("propgrid: invalid value")

// Validator checks a value before it is written to the bound property.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(value any) error

func (f ValidatorFunc) Validate(value any) error { return f(value) }

// RangeValidator accepts numbers in [Min, Max].
type RangeValidator struct {
	Min, Max float64
}

func (v RangeValidator) Validate(value any) error {
	f, ok := asFloat(value)
	if !ok {
		return fmt.Errorf("%w: %v is not a number", ErrInvalidValue, value)
	}
	if f < v.Min || f > v.Max {
		return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidValue, value, v.Min, v.Max)
	}
	return nil
}

// ExprValidator evaluates a boolean expression with the candidate bound to
// the parameter "value", e.g. `value >= 0 && value <= 100` or
// `value != ''`.
type ExprValidator struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// NewExprValidator compiles src.
func NewExprValidator(src string) (*ExprValidator, error) {
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, fmt.Errorf("compile validator %q: %w", src, err)
	}
	return &ExprValidator{src: src, expr: expr}, nil
}

// String returns the expression source.
func (v *ExprValidator) String() string {
	return v.src
}

func (v *ExprValidator) Validate(value any) error {
	result, err := v.expr.Evaluate(map[string]interface{}{
		"value": exprParam(value),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, v.src, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return fmt.Errorf("%w: %s did not yield a boolean", ErrInvalidValue, v.src)
	}
	if !ok {
		return fmt.Errorf("%w: %v fails %s", ErrInvalidValue, value, v.src)
	}
	return nil
}

// exprParam converts value into the types govaluate compares: numbers as
// float64, times and durations in their numeric and string forms.
func exprParam(value any) any {
	if f, ok := asFloat(value); ok {
		return f
	}
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	}
	return value
}

func asFloat(value any) (float64, bool) {
	if d, ok := value.(time.Duration); ok {
		return d.Seconds(), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
