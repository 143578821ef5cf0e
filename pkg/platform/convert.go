package platform

// Native payloads arrive JSON-decoded, so numbers are float64 and handles are
// numbers too. These helpers accept the Go-side types as well for in-process
// bridges that skip the codec.

func toInt(v any) (int, bool) {
	n, ok := toInt64(v)
	return int(n), ok
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	case ItemHandle:
		return int64(n), true
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// argsMap returns args as a map, or nil if it is not one.
func argsMap(args any) map[string]any {
	m, _ := args.(map[string]any)
	return m
}
