package qsenc

import (
	"go.uber.org/zap"

	"github.com/reoring/qsenc/internal/assemble"
)

// Encoder flattens structured values into query strings. The zero value is
// ready to use: keys as described, parts in emission order.
//
// An Encoder holds configuration only; every Encode call allocates its own
// scratch state, so concurrent Encode calls are safe as long as the fields
// are not mutated at the same time.
type Encoder struct {
	// KeyEncoding transforms each key before percent-encoding.
	KeyEncoding KeyEncodingStrategy
	// Formatting holds output flags such as SortedKeys.
	Formatting OutputFormatting
	// RootKey labels scalars and sequence elements described at the top
	// level, where no field name encloses them. Empty by default, which
	// drops such parts.
	RootKey string
	// Logger receives debug entries; nil disables logging.
	Logger *zap.Logger
}

// Option configures an Encoder built by NewEncoder.
type Option func(*Encoder)

// WithKeyEncoding sets the key encoding strategy.
func WithKeyEncoding(s KeyEncodingStrategy) Option {
	return func(e *Encoder) { e.KeyEncoding = s }
}

// WithSortedKeys toggles the SortedKeys output flag.
func WithSortedKeys(enabled bool) Option {
	return func(e *Encoder) {
		if enabled {
			e.Formatting |= SortedKeys
		} else {
			e.Formatting &^= SortedKeys
		}
	}
}

// WithRootKey sets the key used for top-level scalars and sequences.
func WithRootKey(key string) Option {
	return func(e *Encoder) { e.RootKey = key }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Encoder) { e.Logger = l }
}

// NewEncoder returns an Encoder with opts applied over the defaults.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Parts runs the traversal only and returns the emitted parts in order,
// before key transformation, escaping or sorting.
func (e *Encoder) Parts(v any) ([]Part, error) {
	c := &collector{}
	root := &visitor{c: c, key: e.RootKey}
	if err := root.encodeAny(v); err != nil {
		return nil, err
	}
	return c.parts, nil
}

// Encode flattens v into a query string. v may implement Describer;
// otherwise it is walked by reflection (see Visitor.Encode). The only error
// is an *EncodingError reporting that v could not describe itself.
func (e *Encoder) Encode(v any) (string, error) {
	parts, err := e.Parts(v)
	if err != nil {
		return "", err
	}
	log := e.logger()
	out := assemble.Assemble(parts, assemble.Options{
		Transform: e.KeyEncoding.Transform,
		Sorted:    e.Formatting.Has(SortedKeys),
		OnDrop: func(key string) {
			log.Debug("dropping part with empty key", zap.String("key", key))
		},
	})
	log.Debug("encoded query",
		zap.Int("parts", len(parts)),
		zap.Int("bytes", len(out)),
		zap.Stringer("keys", e.KeyEncoding),
	)
	return out, nil
}

func (e *Encoder) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Marshal encodes v with a default Encoder.
func Marshal(v any) (string, error) {
	var e Encoder
	return e.Encode(v)
}
