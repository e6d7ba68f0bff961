// Package source turns decoded JSON and YAML documents into qsenc.Describer
// values. Objects describe as records in document order, arrays as sequences,
// numbers keep their literal text and null emits nothing.
package source

import (
	"errors"

	"github.com/reoring/qsenc"
	eng "github.com/reoring/qsenc/internal/engine"
)

type options struct {
	dup eng.DuplicatePolicy
}

// Option configures document decoding.
type Option func(*options)

// RejectDuplicateKeys makes a repeated object key a duplicate_key error.
// By default every occurrence is kept, since query strings allow repeated keys.
func RejectDuplicateKeys() Option {
	return func(o *options) { o.dup = eng.DupError }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Document is a decoded, order-preserving document.
type Document struct {
	root *eng.Node
}

var _ qsenc.Describer = (*Document)(nil)

// DescribeQuery describes the document tree to v.
func (d *Document) DescribeQuery(v qsenc.Visitor) error {
	if d == nil || d.root == nil {
		return nil
	}
	describeNode(v, d.root)
	return nil
}

func describeNode(v qsenc.Visitor, n *eng.Node) {
	switch n.Kind {
	case eng.NodeObject:
		r := v.Record()
		for _, f := range n.Fields {
			describeNode(r.Field(f.Key), f.Value)
		}
	case eng.NodeArray:
		seq := v.Sequence()
		for _, e := range n.Elems {
			describeNode(seq.Elem(), e)
		}
	case eng.NodeString, eng.NodeNumber:
		v.String(n.Text)
	case eng.NodeBool:
		v.Bool(n.Bool)
	default:
		v.Nil()
	}
}

// buildError maps tree-building failures onto qsenc error codes.
func buildError(err error) error {
	var de *eng.DuplicateKeyError
	if errors.As(err, &de) {
		return qsenc.NewError(de.Path, qsenc.CodeDuplicateKey, err, map[string]string{"key": de.Key})
	}
	return qsenc.NewError("", qsenc.CodeParseError, err, nil)
}
