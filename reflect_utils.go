package qsenc

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// query key. Priority: query:"name" > json tag name > field name; "-" disables
// the field. omitEmpty reports an "omitempty" option on the winning tag.
func ResolveStructKey(sf reflect.StructField) (name string, omitEmpty bool) {
	for _, tag := range []string{"query", "json"} {
		t, ok := sf.Tag.Lookup(tag)
		if !ok || t == "" {
			continue
		}
		if t == "-" {
			return "-", false
		}
		name, opts, _ := strings.Cut(t, ",")
		for _, o := range strings.Split(opts, ",") {
			if strings.TrimSpace(o) == "omitempty" {
				omitEmpty = true
			}
		}
		if name == "" {
			name = sf.Name
		}
		return name, omitEmpty
	}
	return sf.Name, false
}

// encodeValue describes a reflected value, giving pointer-receiver
// Describer and TextMarshaler implementations a chance when rv is addressable.
// Everything else stays on the reflect path so nested fields keep their
// addressability.
func (v *visitor) encodeValue(rv reflect.Value) error {
	if !rv.IsValid() {
		return nil
	}
	if rv.CanInterface() {
		if rv.Kind() != reflect.Pointer && rv.CanAddr() {
			if p := rv.Addr().Interface(); describesItself(p) {
				return v.encodeAny(p)
			}
		}
		if x := rv.Interface(); describesItself(x) {
			return v.encodeAny(x)
		}
	}
	return v.encodeReflect(rv)
}

func describesItself(x any) bool {
	switch x.(type) {
	case Describer, encoding.TextMarshaler:
		return true
	}
	return false
}

func (v *visitor) encodeReflect(rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return v.encodeValue(rv.Elem())
	case reflect.Bool:
		v.Bool(rv.Bool())
	case reflect.String:
		v.String(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.Uint(rv.Uint())
	case reflect.Float32:
		v.Float(rv.Float(), 32)
	case reflect.Float64:
		v.Float(rv.Float(), 64)
	case reflect.Complex64:
		v.String(strconv.FormatComplex(rv.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		v.String(strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	case reflect.Struct:
		return v.encodeStruct(rv)
	case reflect.Slice, reflect.Array:
		seq := v.sequence()
		for i := 0; i < rv.Len(); i++ {
			if err := seq.elem().encodeValue(rv.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		return v.encodeMap(rv)
	default:
		// func, chan, unsafe.Pointer: nil emits nothing, otherwise only a
		// String method can describe them.
		if rv.IsNil() {
			return nil
		}
		if rv.CanInterface() {
			if s, ok := rv.Interface().(fmt.Stringer); ok {
				v.String(s.String())
				return nil
			}
		}
		return NewError(v.path, CodeUnsupportedType, nil, map[string]string{"type": rv.Type().String()})
	}
	return nil
}

func (v *visitor) encodeStruct(rv reflect.Value) error {
	rt := rv.Type()
	r := v.record()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() && !(sf.Anonymous && indirectType(sf.Type).Kind() == reflect.Struct) {
			continue
		}
		name, omitEmpty := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		if err := r.field(name).encodeValue(fv); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap describes a map as a record in ascending key order, since Go maps
// carry no order of their own.
func (v *visitor) encodeMap(rv reflect.Value) error {
	type entry struct {
		name string
		val  reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name, err := mapKeyString(iter.Key())
		if err != nil {
			return NewError(v.path, CodeUnsupportedType, err, map[string]string{"type": rv.Type().String()})
		}
		entries = append(entries, entry{name: name, val: iter.Value()})
	}
	slices.SortStableFunc(entries, func(a, b entry) int { return strings.Compare(a.name, b.name) })
	r := v.record()
	for _, e := range entries {
		if err := r.field(e.name).encodeValue(e.val); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if isNilPointer(tm) {
				return "", nil
			}
			b, err := tm.MarshalText()
			return string(b), err
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("map key of kind %s", k.Kind())
}

func indirectType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
