package ensure

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/asaskevich/govalidator"
)

// ThatPath starts a chain on the slice reached from root by descending one
// property per path segment, so that
//
//	ensure.ThatPath[string](&deck, "0", "History")
//
// targets deck[0].History. A segment names an exported struct field (by Go
// name, with or without a capitalized first letter, or by json tag), a key
// of a string-keyed map, or a decimal index into a slice or array. Pointers
// and interfaces along the way are followed.
//
// The resolved value must be a []T that can be written back: reached
// through a pointer, or stored in a map. A struct stored by value in a map
// is copied, updated and stored back under its key. Resolution errors are
// returned by the terminal method.
func ThatPath[T any](root any, path ...string) Chain[T] {
	if root == nil {
		return Chain[T]{err: fmt.Errorf("%w: nil root", ErrInvalidArgument)}
	}
	t, err := resolve[T](reflect.ValueOf(root), path)
	if err != nil {
		return Chain[T]{err: err}
	}
	return Chain[T]{target: t}
}

func resolve[T any](root reflect.Value, path []string) (target[T], error) {
	name := strings.Join(path, ".")
	if name == "" {
		name = "root"
	}
	l, err := walk(root, path)
	if err != nil {
		return target[T]{}, err
	}
	t, err := bind[T](l.v, l.m, l.key, name)
	if err != nil || len(l.copies) == 0 {
		return t, err
	}
	// Copies are stale once stored back, so each access walks the path again.
	again := func() (target[T], location, bool) {
		l, err := walk(root, path)
		if err != nil {
			return target[T]{}, l, false
		}
		t, err := bind[T](l.v, l.m, l.key, name)
		return t, l, err == nil
	}
	return target[T]{
		get: func() []T {
			if t, _, ok := again(); ok {
				return t.get()
			}
			return nil
		},
		set: func(s []T) {
			if t, l, ok := again(); ok {
				t.set(s)
				l.commit()
			}
		},
	}, nil
}

// location is where a path ends. When the final value is a map entry, m and
// key hold it. Structs stored by value in maps are replaced by addressable
// copies on the way down; commit stores them back.
type location struct {
	v, m, key reflect.Value
	copies    []func()
}

func (l location) commit() {
	for i := len(l.copies) - 1; i >= 0; i-- {
		l.copies[i]()
	}
}

func walk(v reflect.Value, path []string) (location, error) {
	var l location
	for i, seg := range path {
		cur := indirect(v)
		if !cur.IsValid() {
			return location{}, notFound(path, i)
		}
		next, k, ok := lookup(cur, seg)
		if !ok {
			return location{}, notFound(path, i)
		}
		l.m, l.key = reflect.Value{}, reflect.Value{}
		if cur.Kind() == reflect.Map {
			l.m, l.key = cur, k
			if s := indirect(next); s.Kind() == reflect.Struct && !s.CanAddr() {
				cp := reflect.New(s.Type()).Elem()
				cp.Set(s)
				l.copies = append(l.copies, func() { cur.SetMapIndex(k, cp) })
				next = cp
			}
		}
		v = next
	}
	l.v = v
	return l, nil
}

// bind builds a target over v. When v is a map entry, m and key locate it so
// the mutated slice can be stored back.
func bind[T any](v, m, key reflect.Value, name string) (target[T], error) {
	want := reflect.TypeFor[[]T]()
	switch {
	case !v.IsValid():
	case v.Kind() == reflect.Ptr:
		if !v.IsNil() {
			return bind[T](v.Elem(), reflect.Value{}, reflect.Value{}, name)
		}
	case v.Kind() == reflect.Interface:
		if v.IsNil() {
			break
		}
		inner := v.Elem()
		if inner.Kind() == reflect.Ptr {
			return bind[T](inner, reflect.Value{}, reflect.Value{}, name)
		}
		if inner.Type() == want {
			return slot[T](v, m, key, name)
		}
		return target[T]{}, invalidTarget(inner, want, name)
	case v.Type() == want:
		return slot[T](v, m, key, name)
	}
	return target[T]{}, invalidTarget(v, want, name)
}

// slot builds a target over the settable location loc, or over the map
// entry m[key] when loc is a map value.
func slot[T any](loc, m, key reflect.Value, name string) (target[T], error) {
	switch {
	case loc.CanSet():
		return target[T]{
			get: func() []T { return sliceOf[T](loc) },
			set: func(s []T) { loc.Set(reflect.ValueOf(s)) },
		}, nil
	case m.IsValid():
		return target[T]{
			get: func() []T { return sliceOf[T](m.MapIndex(key)) },
			set: func(s []T) { m.SetMapIndex(key, reflect.ValueOf(s)) },
		}, nil
	}
	return target[T]{}, fmt.Errorf("%w: %s is not addressable, pass a pointer", ErrInvalidTarget, name)
}

func sliceOf[T any](v reflect.Value) []T {
	if v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}
	s, _ := v.Interface().([]T)
	return s
}

// lookup resolves one path segment against v. For maps it also returns the
// key it used.
func lookup(v reflect.Value, seg string) (reflect.Value, reflect.Value, bool) {
	switch v.Kind() {
	case reflect.Struct:
		f, ok := field(v, seg)
		return f, reflect.Value{}, ok
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, reflect.Value{}, false
		}
		k := reflect.ValueOf(seg).Convert(v.Type().Key())
		e := v.MapIndex(k)
		return e, k, e.IsValid()
	case reflect.Slice, reflect.Array:
		i, ok := atoi(seg)
		if !ok || i < 0 || i >= v.Len() {
			return reflect.Value{}, reflect.Value{}, false
		}
		return v.Index(i), reflect.Value{}, true
	}
	return reflect.Value{}, reflect.Value{}, false
}

// field finds an exported field of struct v by name, by name with its first
// letter capitalized, or by json tag.
//
// Empty names never match, and neither do fields the json tag hides or
// leaves unnamed.
func field(v reflect.Value, name string) (reflect.Value, bool) {
	if name == "" {
		return reflect.Value{}, false
	}
	t := v.Type()
	for _, n := range []string{name, titleFirst(name)} {
		if sf, ok := t.FieldByName(n); ok && sf.IsExported() {
			f, err := v.FieldByIndexErr(sf.Index)
			return f, err == nil
		}
	}
	for i := range t.NumField() {
		sf := t.Field(i)
		if j := jsonName(sf); sf.IsExported() && j != "" && j != "-" && j == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	return strings.Split(sf.Tag.Get("json"), ",")[0]
}

// titleFirst uppercases the first byte of s, turning a JSON style name
// ("history") into a Go field name ("History").
func titleFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// indirect follows pointers and interfaces. It returns the zero Value when
// it meets a nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// atoi parses a plain decimal integer. An explicit plus sign, "-0",
// leading zeros and hex forms are rejected.
func atoi(s string) (int, bool) {
	if s == "" || s == "-0" || strings.HasPrefix(s, "+") || !govalidator.IsInt(s) {
		return 0, false
	}
	n, err := govalidator.ToInt(s)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func notFound(path []string, i int) error {
	return fmt.Errorf("%w: %s", ErrPropertyNotFound, strings.Join(path[:i+1], "."))
}

func invalidTarget(v reflect.Value, want reflect.Type, name string) error {
	if !v.IsValid() || ((v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil()) {
		return fmt.Errorf("%w: %s is nil, want %s", ErrInvalidTarget, name, want)
	}
	return fmt.Errorf("%w: %s is %s, want %s", ErrInvalidTarget, name, v.Type(), want)
}
