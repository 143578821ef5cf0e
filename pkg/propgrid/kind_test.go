package propgrid

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-drift/propgrid/pkg/platform"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want ValueKind
	}{
		{"bool", reflect.TypeOf(true), KindBool},
		{"int16", reflect.TypeOf(int16(0)), KindInt16},
		{"uint64", reflect.TypeOf(uint64(0)), KindUint64},
		{"float32", reflect.TypeOf(float32(0)), KindFloat32},
		{"string", reflect.TypeOf(""), KindString},
		{"time", reflect.TypeOf(time.Time{}), KindDateTime},
		{"duration", reflect.TypeOf(time.Second), KindDuration},
		{"enum", reflect.TypeOf(Color(0)), KindEnum},
		{"flags", reflect.TypeOf(Style(0)), KindFlags},
		{"struct", reflect.TypeOf(Point{}), KindObject},
		{"struct pointer", reflect.TypeOf(&Point{}), KindObject},
		{"chan", reflect.TypeOf(make(chan int)), KindInvalid},
		{"func", reflect.TypeOf(func() {}), KindInvalid},
		{"map", reflect.TypeOf(map[string]int{}), KindInvalid},
		{"slice", reflect.TypeOf([]int{}), KindInvalid},
		{"nil", nil, KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.typ); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueKindEditor(t *testing.T) {
	tests := []struct {
		kind ValueKind
		want platform.EditorKind
	}{
		{KindBool, platform.EditorBool},
		{KindInt32, platform.EditorInt},
		{KindUint8, platform.EditorUint},
		{KindFloat64, platform.EditorFloat},
		{KindDateTime, platform.EditorDate},
		{KindFlags, platform.EditorFlags},
		{KindCategory, platform.EditorCategory},
		{KindInvalid, ""},
	}
	for _, tt := range tests {
		if got := tt.kind.Editor(); got != tt.want {
			t.Errorf("%v.Editor() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	if ValueKind(200).String() != "invalid" {
		t.Error("out of range kinds should print as invalid")
	}
}
