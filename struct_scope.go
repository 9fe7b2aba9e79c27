package ssmenv

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// StructScope writes values into the tagged fields of a struct:
//
//   type Config struct {
//       Host string `ssm:"host"`
//       DB   struct {
//           User     string `ssm:"user"`
//           Password string `ssm:"password"`
//       } `ssm:"db"`
//       Hosts []string `ssm:"hosts"`
//   }
//
// Tags of nested structs are joined with _, so the scope above accepts the
// keys HOST, DB_USER, DB_PASSWORD and HOSTS. Keys match case-insensitively,
// which pairs with both the Basename and SnakeCase strategies.
//
// Strings and string slices (comma separated) are supported out of the box.
// Other types need a StructOption.
type StructScope struct {
	tag        string
	converters []func(value string, field reflect.Value) (bool, error)

	root   reflect.Value
	fields map[string][]int
	set    map[string]bool
}

// A StructOption configures a StructScope.
type StructOption func(s *StructScope)

// WithTag sets the struct tag to read. Defaults to `ssm`.
func WithTag(tag string) StructOption {
	return func(s *StructScope) {
		s.tag = tag
	}
}

// WithParseDuration parses a duration string to a time.Duration.
func WithParseDuration() StructOption {
	return func(s *StructScope) {
		fn := func(v string, field reflect.Value) (bool, error) {
			if field.Type() != reflect.TypeOf((time.Duration)(0)) {
				return false, nil
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				return false, err
			}
			field.Set(reflect.ValueOf(d))
			return true, nil
		}
		s.converters = append(s.converters, fn)
	}
}

// WithParseTime parses a time string with the given layout to a time.Time.
func WithParseTime(layout string) StructOption {
	return func(s *StructScope) {
		fn := func(v string, field reflect.Value) (bool, error) {
			if field.Type() != reflect.TypeOf(time.Time{}) {
				return false, nil
			}
			t, err := time.Parse(layout, v)
			if err != nil {
				return false, err
			}
			field.Set(reflect.ValueOf(t))
			return true, nil
		}
		s.converters = append(s.converters, fn)
	}
}

// WithParseNumber enables parsing strings and lists of strings to ints and
// floats.
func WithParseNumber() StructOption {
	return func(s *StructScope) {
		fn := func(v string, field reflect.Value) (bool, error) {
			switch field.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				num, err := strconv.ParseInt(v, 10, field.Type().Bits())
				if err != nil {
					nerr := err.(*strconv.NumError)
					return false, fmt.Errorf("parse %q as int: %v", nerr.Num, nerr.Err)
				}
				field.SetInt(num)
				return true, nil
			case reflect.Float32, reflect.Float64:
				num, err := strconv.ParseFloat(v, field.Type().Bits())
				if err != nil {
					nerr := err.(*strconv.NumError)
					return false, fmt.Errorf("parse %q as float: %v", nerr.Num, nerr.Err)
				}
				field.SetFloat(num)
				return true, nil
			}
			return false, nil
		}
		s.converters = append(s.converters, fn)
	}
}

// NewStructScope creates a scope writing to target, which must be a non-nil
// pointer to a struct.
func NewStructScope(target interface{}, options ...StructOption) (*StructScope, error) {
	s := &StructScope{
		// Defaults
		tag: "ssm",
		set: make(map[string]bool),
	}
	for _, opt := range options {
		opt(s)
	}

	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("target is not a pointer")
	}
	if val.IsNil() {
		return nil, fmt.Errorf("target is a nil pointer")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("target is not a pointer to a struct")
	}

	fields, err := s.schema(val.Type(), "", nil)
	if err != nil {
		return nil, err
	}
	s.root = val
	s.fields = fields
	return s, nil
}

// Lookup returns the field at key formatted as a string. Zero values are
// reported as not set.
func (s *StructScope) Lookup(key string) (string, bool) {
	index, ok := s.fields[strings.ToUpper(key)]
	if !ok {
		return "", false
	}
	field, ok := s.field(index, false)
	if !ok || field.IsZero() {
		return "", false
	}
	switch field.Kind() {
	case reflect.String:
		return field.String(), true
	case reflect.Slice:
		parts := make([]string, field.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(field.Index(i).Interface())
		}
		return strings.Join(parts, ","), true
	}
	return fmt.Sprint(field.Interface()), true
}

// Set converts value and assigns it to the field at key. Keys without a
// field are ignored.
func (s *StructScope) Set(key, value string) error {
	key = strings.ToUpper(key)
	index, ok := s.fields[key]
	if !ok {
		return nil
	}
	field, _ := s.field(index, true)
	if err := s.setValue(value, field); err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	s.set[key] = true
	return nil
}

// Missing returns a NotFoundError listing the keys that were never set, or
// nil if every field was set.
func (s *StructScope) Missing() error {
	var names []string
	for k := range s.fields {
		if !s.set[k] {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return NotFoundError{names: names}
}

// field walks index from the root. Nil pointers are allocated when alloc is
// set; otherwise the walk stops at them.
func (s *StructScope) field(index []int, alloc bool) (reflect.Value, bool) {
	field := s.root
	for _, i := range index {
		field = field.Field(i)
		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				if !alloc {
					return reflect.Value{}, false
				}
				field.Set(reflect.New(field.Type().Elem()))
			}
			field = field.Elem()
		}
	}
	return field, true
}

func (s *StructScope) setValue(v string, field reflect.Value) error {
	ty := field.Type()

	for _, conv := range s.converters {
		ok, err := conv(v, field)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	switch ty.Kind() {
	case reflect.String:
		field.SetString(v)
	case reflect.Slice:
		parts := strings.Split(v, ",")
		n := len(parts)
		slice := reflect.MakeSlice(ty, n, n)
		for i, part := range parts {
			if err := s.setValue(part, slice.Index(i)); err != nil {
				return fmt.Errorf("set slice index %d: %v", i, err)
			}
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported: %s", ty.Kind())
	}
	return nil
}

func (s *StructScope) schema(t reflect.Type, keyPrefix string, index []int) (map[string][]int, error) {
	m := make(map[string][]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup(s.tag)
		if !ok {
			continue
		}
		if f.PkgPath != "" {
			return nil, fmt.Errorf("field %q must be exported", f.Name)
		}
		name = strings.ToUpper(name)
		if keyPrefix != "" {
			name = keyPrefix + "_" + name
		}
		ty := f.Type
		if ty.Kind() == reflect.Ptr {
			ty = ty.Elem()
		}
		fieldIndex := append(append([]int(nil), index...), i)

		if ty.Kind() == reflect.Struct && ty != reflect.TypeOf(time.Time{}) {
			// time.Time is also a struct - needs special case
			nested, err := s.schema(ty, name, fieldIndex)
			if err != nil {
				return nil, err
			}
			for k, v := range nested {
				m[k] = v
			}
			continue
		}
		m[name] = fieldIndex
	}
	return m, nil
}
