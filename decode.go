package gleamql

import (
	"math"
	"strconv"
)

// decodeFunc turns one JSON value (as produced by encoding/json into
// any) into a T, reporting failures against the response path that led
// to the value.
type decodeFunc[T any] func(v any, path []string) (T, []DecodeFailure)

// maxJSONInt bounds the integers a float64 represents exactly; JSON
// numbers beyond it have already lost integer precision.
const maxJSONInt = 1 << 53

// jsonKind names the JSON shape of a decoded value for failure
// reports. Numbers carrying an exact integer are reported as Int.
func jsonKind(v any) string {
	switch v := v.(type) {
	case nil:
		return "Null"
	case bool:
		return "Bool"
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= maxJSONInt {
			return "Int"
		}
		return "Float"
	case string:
		return "String"
	case []any:
		return "List"
	case map[string]any:
		return "Object"
	}
	return "Unknown"
}

func newFailure(expected string, v any, path []string) DecodeFailure {
	return DecodeFailure{Expected: expected, Found: jsonKind(v), Path: path}
}

// appendKey copies the path so each failure holds a stable snapshot
// even when sibling fields extend from the same parent path.
func appendKey(path []string, key string) []string {
	next := make([]string, len(path)+1)
	copy(next, path)
	next[len(path)] = key
	return next
}

func appendIndex(path []string, i int) []string {
	return appendKey(path, strconv.Itoa(i))
}

func decodeStringValue(v any, path []string) (string, []DecodeFailure) {
	s, ok := v.(string)
	if !ok {
		return "", []DecodeFailure{newFailure("String", v, path)}
	}
	return s, nil
}

func decodeIntValue(v any, path []string) (int, []DecodeFailure) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > maxJSONInt {
		return 0, []DecodeFailure{newFailure("Int", v, path)}
	}
	return int(f), nil
}

func decodeFloatValue(v any, path []string) (float64, []DecodeFailure) {
	f, ok := v.(float64)
	if !ok {
		return 0, []DecodeFailure{newFailure("Float", v, path)}
	}
	return f, nil
}

func decodeBoolValue(v any, path []string) (bool, []DecodeFailure) {
	b, ok := v.(bool)
	if !ok {
		return false, []DecodeFailure{newFailure("Bool", v, path)}
	}
	return b, nil
}
