package plaincsv

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type celsius float64

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type label string

func (l label) String() string { return "label:" + string(l) }

type codeError int

func (c codeError) Error() string { return "code " + FormatValue(int(c)) }

func TestFormatValue(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 1, 15, 12, 30, 45, 123456789, time.UTC)
	text := "pointed"

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: ""},
		{name: "string", value: "He said \"Hello\"", want: "He said \"Hello\""},
		{name: "bytes", value: []byte("raw"), want: "raw"},
		{name: "int", value: 42, want: "42"},
		{name: "int8", value: int8(-8), want: "-8"},
		{name: "uint64", value: uint64(18446744073709551615), want: "18446744073709551615"},
		{name: "float64", value: 3.25, want: "3.25"},
		{name: "float32", value: float32(1.5), want: "1.5"},
		{name: "bool", value: false, want: "false"},
		{name: "time", value: stamp, want: "2024-01-15T12:30:45.123456789Z"},
		{name: "zeroTime", value: time.Time{}, want: ""},
		{name: "duration", value: 90 * time.Second, want: "1m30s"},
		{name: "stringer", value: label("x"), want: "label:x"},
		{name: "error", value: errors.New("boom"), want: "boom"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"k": 1}, want: `{"k":1}`},
		{name: "struct", value: point{X: 1, Y: 2}, want: `{"x":1,"y":2}`},
		{name: "structPointer", value: &point{X: 3}, want: `{"x":3,"y":0}`},
		{name: "stringPointer", value: &text, want: "pointed"},
		{name: "nilPointer", value: (*point)(nil), want: ""},
		{name: "nilDurationPointer", value: (*time.Duration)(nil), want: ""},
		{name: "nilTimePointer", value: (*time.Time)(nil), want: ""},
		{name: "nilStringerPointer", value: (*label)(nil), want: ""},
		{name: "nilErrorPointer", value: (*codeError)(nil), want: ""},
		{name: "codeError", value: codeError(7), want: "code 7"},
		{name: "namedFloat", value: celsius(36.6), want: "36.6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, FormatValue(tc.value))
		})
	}
}
