package propgrid

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/propgrid/pkg/errors"
)

// toNative converts a Go value into the representation the native editor of
// kind displays: bool, int64, uint64, float64 or string.
func toNative(v reflect.Value, kind ValueKind, params *Constructed) (any, error) {
	if !v.IsValid() {
		return nil, &errors.ConvertError{From: nil, To: kind.String()}
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}

	switch {
	case kind == KindBool:
		return v.Bool(), nil
	case kind.IsSigned():
		return v.Int(), nil
	case kind.IsUnsigned():
		return v.Uint(), nil
	case kind.IsFloat():
		return v.Float(), nil
	}

	switch kind {
	case KindString:
		if v.Kind() == reflect.String {
			return v.String(), nil
		}
		return formatScalar(v, params), nil
	case KindDateTime:
		t, ok := v.Interface().(time.Time)
		if !ok {
			return nil, &errors.ConvertError{From: v.Interface(), To: "time.Time"}
		}
		return t.Format(time.RFC3339Nano), nil
	case KindDuration:
		return time.Duration(v.Int()).String(), nil
	case KindEnum, KindFlags:
		if v.CanInt() {
			return v.Int(), nil
		}
		return int64(v.Uint()), nil
	case KindObject:
		return summarize(v), nil
	}
	return nil, &errors.ConvertError{From: v.Interface(), To: kind.String()}
}

// formatScalar renders a value for a free-text editor, honouring a Format
// or Precision override for numbers.
func formatScalar(v reflect.Value, params *Constructed) string {
	if params != nil {
		if f, ok := params.Format(); ok && f != "" {
			return fmt.Sprintf(f, v.Interface())
		}
		if p, ok := params.Precision(); ok && (v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64) {
			return strconv.FormatFloat(v.Float(), 'f', p, 64)
		}
	}
	return fmt.Sprint(v.Interface())
}

// summarize renders a struct as "(X=1, Y=2)"; it is the text shown on the
// collapsed row of a struct-valued property.
func summarize(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Sprint(v.Interface())
	}
	var parts []string
	for _, p := range PropertiesOf(v.Type()) {
		if !p.Browsable() {
			continue
		}
		fv, err := v.FieldByIndexErr(p.Index)
		if err != nil {
			continue
		}
		if p.Kind == KindObject {
			parts = append(parts, p.Name+"="+summarize(fv))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", p.Name, fv.Interface()))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// fromNative converts a value reported by the native editor into a value
// assignable to t. Numbers may arrive as any numeric type or as text.
func fromNative(native any, t reflect.Type, kind ValueKind, choices *Choices) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	fail := func(err error) (reflect.Value, error) {
		return reflect.Value{}, &errors.ConvertError{From: native, To: t.String(), Err: err}
	}

	switch {
	case kind == KindBool:
		switch b := native.(type) {
		case bool:
			out.SetBool(b)
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return fail(err)
			}
			out.SetBool(parsed)
		default:
			return fail(nil)
		}
		return out, nil

	case kind.IsSigned(), kind == KindEnum, kind == KindFlags:
		n, err := nativeInt(native, choices)
		if err != nil {
			return fail(err)
		}
		if out.CanInt() {
			if out.OverflowInt(n) {
				return fail(strconv.ErrRange)
			}
			out.SetInt(n)
		} else {
			if n < 0 || out.OverflowUint(uint64(n)) {
				return fail(strconv.ErrRange)
			}
			out.SetUint(uint64(n))
		}
		return out, nil

	case kind.IsUnsigned():
		n, err := nativeUint(native)
		if err != nil {
			return fail(err)
		}
		if out.OverflowUint(n) {
			return fail(strconv.ErrRange)
		}
		out.SetUint(n)
		return out, nil

	case kind.IsFloat():
		f, err := nativeFloat(native)
		if err != nil {
			return fail(err)
		}
		if out.OverflowFloat(f) {
			return fail(strconv.ErrRange)
		}
		out.SetFloat(f)
		return out, nil
	}

	switch kind {
	case KindString:
		s, ok := native.(string)
		if !ok {
			s = fmt.Sprint(native)
		}
		if out.Kind() != reflect.String {
			return fail(nil)
		}
		out.SetString(s)
		return out, nil

	case KindDateTime:
		tm, err := nativeTime(native)
		if err != nil {
			return fail(err)
		}
		out.Set(reflect.ValueOf(tm))
		return out, nil

	case KindDuration:
		var d time.Duration
		switch x := native.(type) {
		case string:
			parsed, err := time.ParseDuration(x)
			if err != nil {
				return fail(err)
			}
			d = parsed
		default:
			f, err := nativeFloat(native)
			if err != nil {
				return fail(err)
			}
			d = time.Duration(f * float64(time.Second))
		}
		out.SetInt(int64(d))
		return out, nil
	}
	return fail(nil)
}

func nativeInt(native any, choices *Choices) (int64, error) {
	switch x := native.(type) {
	case string:
		if choices != nil {
			if v, ok := choices.Value(x); ok {
				return v, nil
			}
			if choices.IsFlags() {
				if v, ok := choices.ParseFlags(x); ok {
					return v, nil
				}
			}
		}
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt64 || x < math.MinInt64 {
			return 0, strconv.ErrRange
		}
		return int64(x), nil
	case float32:
		return nativeInt(float64(x), choices)
	}
	rv := reflect.ValueOf(native)
	switch {
	case rv.CanInt():
		return rv.Int(), nil
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
		return int64(u), nil
	}
	return 0, strconv.ErrSyntax
}

func nativeUint(native any) (uint64, error) {
	switch x := native.(type) {
	case string:
		return strconv.ParseUint(strings.TrimSpace(x), 10, 64)
	case float64:
		if x < 0 || x != math.Trunc(x) || x > math.MaxUint64 {
			return 0, strconv.ErrRange
		}
		return uint64(x), nil
	}
	rv := reflect.ValueOf(native)
	switch {
	case rv.CanUint():
		return rv.Uint(), nil
	case rv.CanInt():
		if rv.Int() < 0 {
			return 0, strconv.ErrRange
		}
		return uint64(rv.Int()), nil
	}
	return 0, strconv.ErrSyntax
}

func nativeFloat(native any) (float64, error) {
	if s, ok := native.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	if f, ok := asFloat(native); ok {
		return f, nil
	}
	return 0, strconv.ErrSyntax
}

// nativeTime accepts RFC 3339 strings and millisecond epoch numbers.
func nativeTime(native any) (time.Time, error) {
	switch x := native.(type) {
	case time.Time:
		return x, nil
	case string:
		return time.Parse(time.RFC3339Nano, x)
	}
	ms, err := nativeInt(native, nil)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
