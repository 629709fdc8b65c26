package toml

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses data and stores the result in the value pointed to by v
// Keys absent from the document leave the target field untouched, so v may be pre-filled with defaults
func Unmarshal(data []byte, v any) error {
	doc, err := Parse(data)
	if err != nil {
		return err
	}
	return Decode(doc, v)
}

// Decode maps parsed data onto v using `toml` tags, falling back to field names
func Decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return decodeValue(data, val.Elem(), path)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		return decodeStruct(m, val, path)

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toml: %s: only string-keyed maps are supported", path)
		}
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		if val.IsNil() {
			val.Set(reflect.MakeMapWithSize(val.Type(), len(m)))
		}
		for k, item := range m {
			elem := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(item, elem, join(path, k)); err != nil {
				return err
			}
			val.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), elem)
		}

	case reflect.Slice:
		arr, ok := data.([]any)
		if !ok {
			return typeError(path, "array", data)
		}
		out := reflect.MakeSlice(val.Type(), len(arr), len(arr))
		for i, item := range arr {
			if err := decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Array:
		arr, ok := data.([]any)
		if !ok {
			return typeError(path, "array", data)
		}
		if len(arr) != val.Len() {
			return fmt.Errorf("toml: %s: expected %d elements, got %d", path, val.Len(), len(arr))
		}
		for i, item := range arr {
			if err := decodeValue(item, val.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := data.(int)
		if !ok {
			return typeError(path, "integer", data)
		}
		if val.OverflowInt(int64(i)) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, i, val.Type())
		}
		val.SetInt(int64(i))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := data.(int)
		if !ok || i < 0 {
			return typeError(path, "non-negative integer", data)
		}
		if val.OverflowUint(uint64(i)) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, i, val.Type())
		}
		val.SetUint(uint64(i))

	case reflect.Float32, reflect.Float64:
		// Integers are accepted where floats are expected: gravity = [0, -1, 0]
		switch n := data.(type) {
		case float64:
			val.SetFloat(n)
		case int:
			val.SetFloat(float64(n))
		default:
			return typeError(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return typeError(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return typeError(path, "boolean", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("toml: %s: unsupported target kind %s", path, val.Kind())
	}

	return nil
}

func decodeStruct(m map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, skip := fieldKey(field)
		if skip {
			continue
		}
		data, ok := m[name]
		if !ok {
			continue
		}
		if err := decodeValue(data, val.Field(i), join(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// fieldKey resolves the document key and options of a struct field
func fieldKey(f reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := f.Tag.Get("toml")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func typeError(path, want string, got any) error {
	return fmt.Errorf("toml: %s: expected %s, got %T", path, want, got)
}
