package ensure

import (
	"fmt"
	"reflect"
)

// Struct normalizes every slice field of the struct pointed to by v that
// carries an `ensure` tag, recursing into nested structs, pointers, slices
// and map values. Growing inserts zero values.
//
//	type Player struct {
//	    History []string `ensure:"no_more_than=3,shift"`
//	    Slots   []*Card  `ensure:"at_least=5,push"`
//	}
//
// A tag of "-" is ignored. Invalid tags and tags on non-slice fields are
// reported with the field path. A struct reached through several pointers,
// including a pointer cycle, is normalized once.
func Struct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: Struct requires a non-nil struct pointer, got %T", ErrInvalidArgument, v)
	}
	w := walker{seen: map[visit]bool{{rv.Pointer(), rv.Type()}: true}}
	rv = rv.Elem()
	return w.walkStruct(rv, rv.Type().Name())
}

// walker remembers the struct pointers it has followed.
type walker struct {
	seen map[visit]bool
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

func (w walker) walkStruct(v reflect.Value, path string) error {
	t := v.Type()
	for i := range v.NumField() {
		sf := t.Field(i)
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		name := path + "." + sf.Name
		if tag, ok := sf.Tag.Lookup("ensure"); ok && tag != "-" {
			if field.Kind() != reflect.Slice {
				return fmt.Errorf("%w: %s is %s", ErrInvalidTarget, name, field.Type())
			}
			p, err := ParseTag(tag)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			applyValue(field, p)
		}
		if err := w.walkValue(field, name); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) walkValue(v reflect.Value, path string) error { //nolint:revive // reflection walker is inherently complex
	switch v.Kind() {
	case reflect.Struct:
		return w.walkStruct(v, path)
	case reflect.Ptr:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return nil
		}
		key := visit{v.Pointer(), v.Type()}
		if w.seen[key] {
			return nil
		}
		w.seen[key] = true
		return w.walkStruct(v.Elem(), path)
	case reflect.Slice, reflect.Array:
		if !walkable(v.Type().Elem()) {
			return nil
		}
		for j := range v.Len() {
			if err := w.walkValue(v.Index(j), fmt.Sprintf("%s[%d]", path, j)); err != nil {
				return err
			}
		}
	case reflect.Map:
		if !walkable(v.Type().Elem()) {
			return nil
		}
		for _, key := range v.MapKeys() {
			val := v.MapIndex(key)
			elemPath := fmt.Sprintf("%s[%v]", path, key.Interface())
			// Map values aren't addressable; copy, normalize, put back.
			if val.Kind() == reflect.Struct {
				cp := reflect.New(val.Type()).Elem()
				cp.Set(val)
				if err := w.walkStruct(cp, elemPath); err != nil {
					return err
				}
				v.SetMapIndex(key, cp)
				continue
			}
			if err := w.walkValue(val, elemPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkable reports whether values of type t can hold tagged fields.
func walkable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
		return walkable(t.Elem())
	}
	return false
}

// applyValue is the reflective counterpart of Chain.Execute for a settable
// slice value.
func applyValue(v reflect.Value, p Policy) {
	n := p.compare(v.Len())
	if n == 0 {
		return
	}
	v.Set(transformValue(v, p.Transform, n))
}

func transformValue(s reflect.Value, t Transform, n int) reflect.Value {
	l := s.Len()
	switch t {
	case TransformPop:
		n = min(n, l)
		for i := l - n; i < l; i++ {
			s.Index(i).SetZero()
		}
		return s.Slice(0, l-n)
	case TransformShift:
		n = min(n, l)
		reflect.Copy(s, s.Slice(n, l))
		for i := l - n; i < l; i++ {
			s.Index(i).SetZero()
		}
		return s.Slice(0, l-n)
	case TransformPush:
		return reflect.AppendSlice(s, reflect.MakeSlice(s.Type(), n, n))
	case TransformUnshift:
		out := reflect.MakeSlice(s.Type(), l+n, l+n)
		reflect.Copy(out.Slice(n, l+n), s)
		return out
	}
	panic("ensure: unknown transform " + t.String())
}
