// Package assemble renders a flat list of key/value parts into a query string.
package assemble

import (
	"slices"
	"strings"
)

// Part is one emitted unit prior to assembly. A part without a value is a
// presence marker and renders as a bare key.
type Part struct {
	Key      string
	Value    string
	HasValue bool
}

// Options controls assembly.
type Options struct {
	// Transform is applied to every key before escaping. Nil means identity.
	Transform func(string) string
	// Sorted orders parts by escaped key, keeping the relative order of equal keys.
	Sorted bool
	// OnDrop, when set, is called with the original key of each part whose
	// escaped key is empty.
	OnDrop func(key string)
}

type rendered struct {
	key   string
	value string
}

// Assemble transforms, escapes, filters, optionally sorts and joins parts.
func Assemble(parts []Part, opt Options) string {
	out := make([]rendered, 0, len(parts))
	for _, p := range parts {
		k := p.Key
		if opt.Transform != nil {
			k = opt.Transform(k)
		}
		r := rendered{key: Escape(k)}
		if r.key == "" {
			if opt.OnDrop != nil {
				opt.OnDrop(p.Key)
			}
			continue
		}
		if p.HasValue {
			r.value = Escape(p.Value)
		}
		out = append(out, r)
	}
	if opt.Sorted {
		slices.SortStableFunc(out, func(a, b rendered) int {
			return strings.Compare(a.key, b.key)
		})
	}

	var b strings.Builder
	for i, r := range out {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(r.key)
		if r.value != "" {
			b.WriteByte('=')
			b.WriteString(r.value)
		}
	}
	return b.String()
}
