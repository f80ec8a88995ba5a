package protocol

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
)

var escaper = strings.NewReplacer(
	"\\", `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

// Escape backslash-encodes the characters that would break tuple framing.
func Escape(s string) string {
	return escaper.Replace(s)
}

// FormatTimestamp renders seconds relative to the session start with
// microsecond precision.
func FormatTimestamp(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

// FormatTuple renders one networked tuple line:
// timestamp, stream id, sequence number, then every value, tab-separated.
func FormatTuple(timestamp float64, streamID int, seq uint64, values []string) string {
	var b strings.Builder
	b.WriteString(FormatTimestamp(timestamp))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(streamID))
	b.WriteByte('\t')
	b.WriteString(strconv.FormatUint(seq, 10))
	for _, v := range values {
		b.WriteByte('\t')
		b.WriteString(v)
	}
	b.WriteByte('\n')
	return b.String()
}

// FormatEcho renders the line printed instead of a tuple when the session is
// degraded. It carries neither stream id nor sequence number, and the values
// start after an empty column.
func FormatEcho(timestamp float64, values []string) string {
	var b strings.Builder
	b.WriteString(FormatTimestamp(timestamp))
	b.WriteByte('\t')
	for _, v := range values {
		b.WriteByte('\t')
		b.WriteString(v)
	}
	b.WriteByte('\n')
	return b.String()
}

// EncodeValues stringifies a measurement list. values must be a slice or an
// array; anything else yields ErrInvalidMeasurementList.
func EncodeValues(values any) ([]string, error) {
	rv := reflect.ValueOf(values)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: got nil", errspkg.ErrInvalidMeasurementList)
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: got %T", errspkg.ErrInvalidMeasurementList, values)
	}

	out := make([]string, rv.Len())
	for i := range out {
		s, err := EncodeValue(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", errspkg.ErrInvalidMeasurementList, i, err)
		}
		out[i] = s
	}
	return out, nil
}

// EncodeValue stringifies one scalar. Strings are escaped and byte slices are
// base64-encoded as OML blobs.
func EncodeValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil", errspkg.ErrUnsupportedValue)
	case string:
		return Escape(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(x), nil
	case fmt.Stringer:
		return Escape(x.String()), nil
	case error:
		return Escape(x.Error()), nil
	}

	// Named scalar types such as `type Celsius float64`.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), nil
	case reflect.String:
		return Escape(rv.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return "", fmt.Errorf("%w: nil %T", errspkg.ErrUnsupportedValue, v)
		}
		return EncodeValue(rv.Elem().Interface())
	}
	return "", fmt.Errorf("%w: %T", errspkg.ErrUnsupportedValue, v)
}
