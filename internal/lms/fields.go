package lms

import "strconv"

// Result is the parsed response mapping of one server request. Values are
// strings, numbers or nested sequences/mappings depending on the command.
type Result map[string]any

// The server is loose about value types: numeric fields arrive as JSON
// numbers or as strings depending on the command and server version. Each
// helper below coerces one field and substitutes the caller's default when
// the field is missing or unparseable. The defaults are part of the
// contract (volume 0, muting false, time 0.0, ...), so the fallbacks are
// explicit branches rather than ignored errors.

func intField(r Result, key string, def int) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

func floatField(r Result, key string, def float64) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

func stringField(r Result, key, def string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return def
	}
}

// boolField reports whether the field coerces to the integer 1, the
// server's encoding of a set flag. Anything else, including an absent
// field, is false.
func boolField(r Result, key string) bool {
	return intField(r, key, 0) == 1
}
