package toml

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal encodes a struct or string-keyed map as a document
// Plain values of a table come first, nested tables follow as [dotted.headers]
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		rv = rv.Elem()
	}
	if !isTable(rv) {
		return nil, fmt.Errorf("toml: root must be a struct or map, got %s", rv.Kind())
	}

	var buf bytes.Buffer
	if err := encodeTable(&buf, rv, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type entry struct {
	key string
	val reflect.Value
}

func encodeTable(buf *bytes.Buffer, rv reflect.Value, path []string) error {
	entries, err := tableEntries(rv)
	if err != nil {
		return err
	}

	var tables []entry
	for _, e := range entries {
		if isTable(e.val) {
			tables = append(tables, e)
			continue
		}
		s, err := encodeValue(e.val)
		if err != nil {
			return fmt.Errorf("toml: key %q: %w", e.key, err)
		}
		fmt.Fprintf(buf, "%s = %s\n", quoteKey(e.key), s)
	}

	for _, t := range tables {
		sub := append(append([]string(nil), path...), t.key)
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		keys := make([]string, len(sub))
		for i, k := range sub {
			keys[i] = quoteKey(k)
		}
		fmt.Fprintf(buf, "[%s]\n", strings.Join(keys, "."))
		if err := encodeTable(buf, indirect(t.val), sub); err != nil {
			return err
		}
	}
	return nil
}

// tableEntries lists fields in declaration order, or map keys sorted
func tableEntries(rv reflect.Value) ([]entry, error) {
	var out []entry
	switch rv.Kind() {
	case reflect.Struct:
		typ := rv.Type()
		for i := 0; i < typ.NumField(); i++ {
			f := typ.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omitEmpty, skip := fieldKey(f)
			if skip {
				continue
			}
			fv := rv.Field(i)
			if omitEmpty && fv.IsZero() {
				continue
			}
			if fv.Kind() == reflect.Pointer && fv.IsNil() {
				continue
			}
			out = append(out, entry{name, fv})
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("toml: only string-keyed maps are supported")
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, entry{k, rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))})
		}
	}
	return out, nil
}

func encodeValue(v reflect.Value) (string, error) {
	v = indirect(v)
	switch v.Kind() {
	case reflect.String:
		return strconv.Quote(v.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(v.Float()), nil
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			s, err := encodeValue(v.Index(i))
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case reflect.Map, reflect.Struct:
		// Tables nested inside arrays are written inline
		entries, err := tableEntries(v)
		if err != nil {
			return "", err
		}
		parts := make([]string, len(entries))
		for i, e := range entries {
			s, err := encodeValue(e.val)
			if err != nil {
				return "", err
			}
			parts[i] = quoteKey(e.key) + " = " + s
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case reflect.Invalid:
		return "", fmt.Errorf("nil value")
	}
	return "", fmt.Errorf("unsupported kind %s", v.Kind())
}

// formatFloat keeps a decimal point or exponent so the value decodes back as a float
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteKey(k string) string {
	if isBareKey(k) {
		return k
	}
	return strconv.Quote(k)
}

func isTable(v reflect.Value) bool {
	v = indirect(v)
	return v.Kind() == reflect.Struct || v.Kind() == reflect.Map
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
