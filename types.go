package qsenc

import (
	"fmt"
	"strings"

	"github.com/reoring/qsenc/internal/keycase"
)

type keyStrategyKind int

const (
	_keysAsIs keyStrategyKind = iota
	_keysCamelToSnake
	_keysCustom
)

// KeyEncodingStrategy transforms every emitted key before percent-encoding.
// The zero value leaves keys as they are.
type KeyEncodingStrategy struct {
	kind keyStrategyKind
	fn   func(string) string
}

var (
	// KeysAsIs uses keys exactly as described.
	KeysAsIs = KeyEncodingStrategy{}
	// KeysCamelToSnake converts mixed-case keys to lower snake_case.
	KeysCamelToSnake = KeyEncodingStrategy{kind: _keysCamelToSnake}
)

// KeysCustom applies fn to each key. fn must be pure; a nil fn behaves like KeysAsIs.
func KeysCustom(fn func(string) string) KeyEncodingStrategy {
	if fn == nil {
		return KeysAsIs
	}
	return KeyEncodingStrategy{kind: _keysCustom, fn: fn}
}

// Transform applies the strategy to key.
func (s KeyEncodingStrategy) Transform(key string) string {
	switch s.kind {
	case _keysCamelToSnake:
		return keycase.CamelToSnake(key)
	case _keysCustom:
		return s.fn(key)
	default:
		return key
	}
}

func (s KeyEncodingStrategy) String() string {
	switch s.kind {
	case _keysCamelToSnake:
		return "snake"
	case _keysCustom:
		return "custom"
	default:
		return "as-is"
	}
}

// ParseKeyEncodingStrategy resolves the textual names used by configuration
// files and flags ("as-is", "snake"). Custom strategies have no textual form.
func ParseKeyEncodingStrategy(name string) (KeyEncodingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "as-is", "asis", "default":
		return KeysAsIs, nil
	case "snake", "snake_case", "camel-to-snake":
		return KeysCamelToSnake, nil
	}
	return KeysAsIs, fmt.Errorf("qsenc: unknown key encoding strategy %q", name)
}

// OutputFormatting is a set of flags controlling the rendered output.
type OutputFormatting uint

const (
	// SortedKeys orders parts by their encoded key (stable for equal keys).
	SortedKeys OutputFormatting = 1 << iota
)

// Has reports whether every flag in f2 is set in f.
func (f OutputFormatting) Has(f2 OutputFormatting) bool { return f&f2 == f2 }
