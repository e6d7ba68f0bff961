// Package qsenc flattens structured values into percent-encoded query strings.
//
// A value describes its own shape to a Visitor (fields, sequences, scalars);
// the encoder collects the emitted key/value parts in order and assembles
// them into the final string:
//
//   - Sequence elements repeat the enclosing key: tags=foo&tags=bar.
//   - true booleans render as a bare key; false ones are omitted.
//   - Nested records contribute only their own field names; the enclosing
//     field name is not used as a prefix.
//   - Keys may be transformed (KeysCamelToSnake, KeysCustom) and sorted
//     (SortedKeys) before joining.
//   - '=', '?' and '&' are always percent-encoded in keys and values.
//
// Values that do not implement Describer are walked by reflection, honoring
// `query` and `json` struct tags.
//
// Design policy:
//   - Keep only public APIs in the root package; put assembly and key casing
//     under internal/.
//   - Input adapters live under source/ and reusable leaf codecs under codec/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	enc := qsenc.NewEncoder(qsenc.WithKeyEncoding(qsenc.KeysCamelToSnake), qsenc.WithSortedKeys(true))
//	q, err := enc.Encode(query)
package qsenc
