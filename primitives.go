package qsenc

import (
	"encoding"
	"math"
	"reflect"
	"strconv"
)

// encodeAny dispatches on the dynamic type of x. Self-describing values win
// over everything else, then scalars with a direct text form, then reflection.
func (v *visitor) encodeAny(x any) error {
	switch t := x.(type) {
	case nil:
		return nil
	case Describer:
		if isNilPointer(x) {
			return nil
		}
		if err := t.DescribeQuery(v); err != nil {
			return describeFailed(v.path, err)
		}
	case bool:
		v.Bool(t)
	case string:
		v.String(t)
	case int:
		v.Int(int64(t))
	case int8:
		v.Int(int64(t))
	case int16:
		v.Int(int64(t))
	case int32:
		v.Int(int64(t))
	case int64:
		v.Int(t)
	case uint:
		v.Uint(uint64(t))
	case uint8:
		v.Uint(uint64(t))
	case uint16:
		v.Uint(uint64(t))
	case uint32:
		v.Uint(uint64(t))
	case uint64:
		v.Uint(t)
	case uintptr:
		v.Uint(uint64(t))
	case float32:
		v.Float(float64(t), 32)
	case float64:
		v.Float(t, 64)
	case encoding.TextMarshaler:
		if isNilPointer(x) {
			return nil
		}
		b, err := t.MarshalText()
		if err != nil {
			return describeFailed(v.path, err)
		}
		v.String(string(b))
	default:
		return v.encodeReflect(reflect.ValueOf(x))
	}
	return nil
}

func isNilPointer(x any) bool {
	rv := reflect.ValueOf(x)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// formatFloat renders f in its shortest round-trip form, switching to
// exponent notation outside [1e-6, 1e21) like encoding/json does.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	if bits != 32 {
		bits = 64
	}
	abs := math.Abs(f)
	fmtc := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmtc = 'e'
		}
	}
	b := strconv.AppendFloat(make([]byte, 0, 24), f, fmtc, -1, bits)
	if fmtc == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
