package plaincsv

import (
	"fmt"
	"reflect"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatValue renders v as field text. It never fails: nil and the zero time
// become the empty string, scalars use their canonical text form, times are
// RFC 3339 with nanoseconds, and maps, slices and structs are encoded as JSON.
func FormatValue(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		// Value-receiver methods would panic on a nil pointer.
		return ""
	}

	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	case reflect.Pointer:
		return FormatValue(rv.Elem().Interface())
	}

	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
