// Package keycase converts field names between casing conventions.
package keycase

import (
	"strings"
	"unicode"
)

// CamelToSnake lowercases s and inserts an underscore before every upper-case
// letter that follows a non-empty run not already ending in '_'.
// Existing underscores and caseless runes (digits, symbols, emoji) are kept.
//
//	CamelToSnake("PascalCase") == "pascal_case"
//	CamelToSnake("__FooBar__") == "__foo_bar__"
//	CamelToSnake("ABCd")       == "a_b_cd"
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var last rune
	run := false // current run is non-empty
	for _, r := range s {
		if run && unicode.IsUpper(r) && last != '_' {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		last = r
		run = true
	}
	return b.String()
}
