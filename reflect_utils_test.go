package qsenc_test

import (
	"fmt"
	"net/netip"
	"reflect"
	"testing"
	"time"
	"unsafe"

	"github.com/reoring/qsenc"
)

func TestResolveStructKey(t *testing.T) {
	type s struct {
		A int `query:"a,omitempty" json:"ignored"`
		B int `json:"b"`
		C int `json:",omitempty"`
		D int `query:"-"`
		E int
		F int `query:"" json:"f"`
	}
	want := []struct {
		name string
		omit bool
	}{{"a", true}, {"b", false}, {"C", true}, {"-", false}, {"E", false}, {"f", false}}
	rt := reflect.TypeOf(s{})
	for i, w := range want {
		name, omit := qsenc.ResolveStructKey(rt.Field(i))
		if name != w.name || omit != w.omit {
			t.Errorf("field %d: got (%q,%v), want (%q,%v)", i, name, omit, w.name, w.omit)
		}
	}
}

type Paging struct {
	Page  int `query:"page"`
	Limit int `query:"limit,omitempty"`
}

type level int

func (l level) String() string { return fmt.Sprintf("L%d", int(l)) }

type upper string

func (u *upper) DescribeQuery(v qsenc.Visitor) error {
	v.String("UP:" + string(*u))
	return nil
}

type search struct {
	Paging
	internal string
	Skip     string            `query:"-"`
	Since    time.Time         `query:"since"`
	Addr     netip.Addr        `query:"addr"`
	Labels   map[string]string `query:"labels"`
	ByID     map[int]bool      `query:"by_id"`
	Level    level             `query:"level"`
	Mode     upper             `query:"mode"`
	Ratio    complex128        `query:"ratio"`
	Fixed    [2]uint16         `query:"fixed"`
}

func TestEncode_ReflectionFeatures(t *testing.T) {
	s := search{
		Paging:   Paging{Page: 2},
		internal: "hidden",
		Skip:     "skipped",
		Since:    time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Addr:     netip.MustParseAddr("10.0.0.1"),
		Labels:   map[string]string{"zone": "b", "app": "web"},
		ByID:     map[int]bool{2: true, 1: false, 10: true},
		Level:    3,
		Mode:     "x",
		Ratio:    complex(1, 2),
		Fixed:    [2]uint16{7, 8},
	}
	// Level is a named int: the integer wins over its String method. Mode
	// needs an addressable value for its pointer-receiver DescribeQuery.
	want := "page=2&since=2024-05-06T07:08:09Z&addr=10.0.0.1&app=web&zone=b&10&2&level=3&mode=UP:x&ratio=(1+2i)&fixed=7&fixed=8"
	assertEncodes(t, qsenc.NewEncoder(), &s, want)
}

type stringerFunc func()

func (stringerFunc) String() string { return "fn" }

func TestEncode_StringerFallbackForOpaqueValues(t *testing.T) {
	type holder struct {
		F stringerFunc `query:"f"`
	}
	assertEncodes(t, qsenc.NewEncoder(), holder{F: func() {}}, "f=fn")
}

func TestEncode_NilOpaqueValuesEmitNothing(t *testing.T) {
	type holder struct {
		Name string         `query:"name"`
		F    func()         `query:"f"`
		C    chan int       `query:"c"`
		P    unsafe.Pointer `query:"p"`
		S    stringerFunc   `query:"s"`
	}
	assertEncodes(t, qsenc.NewEncoder(), holder{Name: "x"}, "name=x")
}
