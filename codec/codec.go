package codec

import (
	"encoding"
	"reflect"
	"strconv"
	"time"

	"github.com/reoring/qsenc"
)

// RFC3339 describes t as a canonical RFC3339 string (UTC, trailing zeros of
// the fraction trimmed). The zero time describes nothing.
func RFC3339(t time.Time) qsenc.Describer { return rfc3339{t} }

type rfc3339 struct{ t time.Time }

func (c rfc3339) DescribeQuery(v qsenc.Visitor) error {
	if c.t.IsZero() {
		v.Nil()
		return nil
	}
	v.String(formatRFC3339Canonical(c.t))
	return nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}

// Unix describes t as whole seconds since the Unix epoch. The zero time
// describes nothing.
func Unix(t time.Time) qsenc.Describer { return unix{t} }

type unix struct{ t time.Time }

func (c unix) DescribeQuery(v qsenc.Visitor) error {
	if c.t.IsZero() {
		v.Nil()
		return nil
	}
	v.Int(c.t.Unix())
	return nil
}

// Duration describes d in Go duration syntax ("1h30m0s").
func Duration(d time.Duration) qsenc.Describer { return duration(d) }

type duration time.Duration

func (d duration) DescribeQuery(v qsenc.Visitor) error {
	v.String(time.Duration(d).String())
	return nil
}

// Seconds describes d as a decimal number of seconds.
func Seconds(d time.Duration) qsenc.Describer { return seconds(d) }

type seconds time.Duration

func (d seconds) DescribeQuery(v qsenc.Visitor) error {
	v.String(strconv.FormatFloat(time.Duration(d).Seconds(), 'f', -1, 64))
	return nil
}

// Text describes m through MarshalText. A marshal error becomes the
// describe failure of the enclosing Encode call.
func Text(m encoding.TextMarshaler) qsenc.Describer { return text{m} }

type text struct{ m encoding.TextMarshaler }

func (c text) DescribeQuery(v qsenc.Visitor) error {
	if isNil(c.m) {
		v.Nil()
		return nil
	}
	b, err := c.m.MarshalText()
	if err != nil {
		return err
	}
	v.String(string(b))
	return nil
}

func isNil(x any) bool {
	if x == nil {
		return true
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
