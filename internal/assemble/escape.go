package assemble

import "strings"

const upperhex = "0123456789ABCDEF"

// queryAllowed is the RFC 3986 query character set (unreserved, sub-delims,
// ':', '@', '/' and '?') without '=', '?' and '&'.
var queryAllowed [256]bool

func init() {
	for c := 'a'; c <= 'z'; c++ {
		queryAllowed[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		queryAllowed[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		queryAllowed[c] = true
	}
	for _, c := range "-._~!$'()*+,;:@/" {
		queryAllowed[c] = true
	}
}

// Escape percent-encodes every byte of s outside the allowed query set.
func Escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !queryAllowed[s[i]] {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if queryAllowed[c] {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}
