package qsenc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/qsenc"
)

type address struct {
	City string `query:"city"`
	Zip  string `query:"zip"`
}

type person struct {
	Name    string  `query:"name"`
	Address address `query:"address"`
	Active  bool    `query:"active"`
}

func TestEncode_NestedRecordReplacesKey(t *testing.T) {
	p := person{Name: "ann", Address: address{City: "Oslo", Zip: "0150"}, Active: true}
	got, err := qsenc.Marshal(p)
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	// No "address" prefix anywhere: nested fields surface under their own names.
	if want := "name=ann&city=Oslo&zip=0150&active"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

type group struct {
	Members []address `query:"members"`
	Matrix  [][]int   `query:"m"`
}

func TestEncode_SequenceElementsShareKey(t *testing.T) {
	g := group{
		Members: []address{{City: "a", Zip: "1"}, {City: "b"}},
		Matrix:  [][]int{{1, 2}, {3}},
	}
	got, err := qsenc.Marshal(g)
	if err != nil {
		t.Fatalf("marshal err=%v", err)
	}
	if want := "city=a&zip=1&city=b&zip&m=1&m=2&m=3"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncode_TopLevelScalarsUseRootKey(t *testing.T) {
	e := qsenc.NewEncoder()
	for _, v := range []any{"x", 42, []string{"a", "b"}, true} {
		got, err := e.Encode(v)
		if err != nil || got != "" {
			t.Fatalf("Encode(%v) = %q, %v; want empty output", v, got, err)
		}
	}
	e.RootKey = "q"
	assertEncodes(t, e, []string{"a", "b"}, "q=a&q=b")
	assertEncodes(t, e, 7, "q=7")
	assertEncodes(t, e, true, "q")
	assertEncodes(t, e, false, "")
}

func TestEncode_NilEmitsNothing(t *testing.T) {
	type withPtrs struct {
		A *string `query:"a"`
		B any     `query:"b"`
		C *int    `query:"c"`
	}
	c := 3
	assertEncodes(t, qsenc.NewEncoder(), withPtrs{C: &c}, "c=3")
	assertEncodes(t, qsenc.NewEncoder(), nil, "")
	var mq *myQuery
	assertEncodes(t, qsenc.NewEncoder(), mq, "")
}

type manual struct{}

func (manual) DescribeQuery(v qsenc.Visitor) error {
	r := v.Record()
	r.Field("i").Int(-5)
	r.Field("u").Uint(18446744073709551615)
	r.Field("f32").Float(0.1, 32)
	r.Field("f64").Float(0.1, 64)
	r.Field("nil").Nil()
	r.Field("no").Bool(false)
	seq := r.Field("s").Sequence()
	seq.Elem().String("x")
	inner := seq.Elem().Sequence()
	inner.Elem().Int(1)
	inner.Elem().Bool(true)
	return r.Field("enc").Encode([]any{"y", nil, 2.5})
}

func TestEncoder_Parts(t *testing.T) {
	parts, err := qsenc.NewEncoder().Parts(manual{})
	if err != nil {
		t.Fatalf("parts err=%v", err)
	}
	want := []qsenc.Part{
		{Key: "i", Value: "-5", HasValue: true},
		{Key: "u", Value: "18446744073709551615", HasValue: true},
		{Key: "f32", Value: "0.1", HasValue: true},
		{Key: "f64", Value: "0.1", HasValue: true},
		{Key: "s", Value: "x", HasValue: true},
		{Key: "s", Value: "1", HasValue: true},
		{Key: "s"},
		{Key: "enc", Value: "y", HasValue: true},
		{Key: "enc", Value: "2.5", HasValue: true},
	}
	if diff := cmp.Diff(want, parts); diff != "" {
		t.Fatalf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_FloatRendering(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{1.0123456789, "1.0123456789"},
		{100.0, "100"},
		{float32(1.1), "1.1"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{123456789.0, "123456789"},
		{-0.5, "-0.5"},
	}
	e := qsenc.NewEncoder(qsenc.WithRootKey("v"))
	for _, tc := range cases {
		assertEncodes(t, e, tc.v, "v="+tc.want)
	}
}
