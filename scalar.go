package gleamql

// String selects a field that decodes a JSON string.
func String(name string) Field[string] {
	return Field[string]{name: name, variant: scalarSelection{}, decode: decodeStringValue}
}

// Int selects a field that decodes a JSON number with no fractional
// part.
func Int(name string) Field[int] {
	return Field[int]{name: name, variant: scalarSelection{}, decode: decodeIntValue}
}

// Float selects a field that decodes any JSON number.
func Float(name string) Field[float64] {
	return Field[float64]{name: name, variant: scalarSelection{}, decode: decodeFloatValue}
}

// Bool selects a field that decodes a JSON boolean.
func Bool(name string) Field[bool] {
	return Field[bool]{name: name, variant: scalarSelection{}, decode: decodeBoolValue}
}

// ID selects an ID field. IDs serialize as strings on the wire, so the
// decoder is the string decoder.
func ID(name string) Field[string] {
	return Field[string]{name: name, variant: scalarSelection{}, decode: decodeStringValue}
}
