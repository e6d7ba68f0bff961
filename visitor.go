package qsenc

import (
	"strconv"
	"strings"

	"github.com/reoring/qsenc/internal/assemble"
)

// Part is one emitted key with an optional value. Parts without a value are
// presence markers (true booleans) and render as a bare key.
type Part = assemble.Part

// Describer is implemented by values that describe their own shape to a
// Visitor. Fields, elements and scalars are pushed in output order.
//
//	func (q Query) DescribeQuery(v qsenc.Visitor) error {
//		r := v.Record()
//		r.Field("hello").String(q.Hello)
//		tags := r.Field("tags").Sequence()
//		for _, t := range q.Tags {
//			tags.Elem().String(t)
//		}
//		r.Field("flag").Bool(q.Flag)
//		return nil
//	}
type Describer interface {
	DescribeQuery(v Visitor) error
}

// Visitor receives a value's self-description. Every Visitor is bound to one
// key: the field it was obtained for, or the enclosing key for sequence
// elements.
type Visitor interface {
	// Record enters a value with named fields. Nested records do not prefix
	// their field names with the enclosing key.
	Record() RecordVisitor
	// Sequence enters a list of values. Every element is emitted under the
	// visitor's own key, producing repeated key=value occurrences.
	Sequence() SequenceVisitor

	// Bool emits a bare key for true and nothing for false.
	Bool(v bool)
	String(v string)
	Int(v int64)
	Uint(v uint64)
	// Float renders v in its shortest decimal form for bitSize (32 or 64).
	Float(v float64, bitSize int)
	// Nil emits nothing.
	Nil()
	// Encode describes an arbitrary Go value: Describers recurse, scalars and
	// encoding.TextMarshaler become leaves and the rest is walked by reflection.
	Encode(v any) error
}

// RecordVisitor hands out visitors for the fields of a record.
type RecordVisitor interface {
	Field(name string) Visitor
}

// SequenceVisitor hands out visitors for successive sequence elements.
type SequenceVisitor interface {
	Elem() Visitor
}

// collector owns the parts of a single Encode call.
type collector struct {
	parts []Part
}

func (c *collector) presence(key string) {
	c.parts = append(c.parts, Part{Key: key})
}

func (c *collector) pair(key, value string) {
	c.parts = append(c.parts, Part{Key: key, Value: value, HasValue: true})
}

// visitor is the traversal engine. key is the label for leaves emitted here;
// path is diagnostic only.
type visitor struct {
	c    *collector
	key  string
	path string
}

var _ Visitor = (*visitor)(nil)

func (v *visitor) Record() RecordVisitor     { return v.record() }
func (v *visitor) Sequence() SequenceVisitor { return v.sequence() }

func (v *visitor) record() record { return record{c: v.c, path: v.path} }

func (v *visitor) sequence() *sequence {
	return &sequence{c: v.c, key: v.key, path: v.path}
}

func (v *visitor) Bool(b bool) {
	if b {
		v.c.presence(v.key)
	}
}

func (v *visitor) String(s string) { v.c.pair(v.key, s) }
func (v *visitor) Int(i int64)     { v.c.pair(v.key, strconv.FormatInt(i, 10)) }
func (v *visitor) Uint(u uint64)   { v.c.pair(v.key, strconv.FormatUint(u, 10)) }
func (v *visitor) Nil()            {}

func (v *visitor) Float(f float64, bitSize int) {
	v.c.pair(v.key, formatFloat(f, bitSize))
}

func (v *visitor) Encode(x any) error { return v.encodeAny(x) }

type record struct {
	c    *collector
	path string
}

func (r record) Field(name string) Visitor { return r.field(name) }

func (r record) field(name string) *visitor {
	return &visitor{c: r.c, key: name, path: r.path + "/" + escapePointerToken(name)}
}

type sequence struct {
	c    *collector
	key  string
	path string
	n    int
}

func (s *sequence) Elem() Visitor { return s.elem() }

func (s *sequence) elem() *visitor {
	p := s.path + "/" + strconv.Itoa(s.n)
	s.n++
	return &visitor{c: s.c, key: s.key, path: p}
}

// escapePointerToken escapes '~' -> '~0', '/' -> '~1' per RFC6901.
func escapePointerToken(name string) string {
	if !strings.ContainsAny(name, "~/") {
		return name
	}
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}
