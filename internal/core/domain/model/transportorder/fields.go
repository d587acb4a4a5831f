package transportorder

import "maps"

// Fields is a normalized section of the draft (transport info or order
// details). Values are either string or []string.
type Fields map[string]any

// NewFields returns an empty, non-nil section.
func NewFields() Fields {
	return Fields{}
}

// Set stores value under key in normalized form. A []string is kept and a
// []any becomes a list of texts. Anything else is stored as Text(value), so
// 12.5 is stored as "12.5".
func (f Fields) Set(key string, value any) {
	switch v := value.(type) {
	case []string:
		f[key] = v
	case []any:
		f[key] = Texts(v)
	default:
		f[key] = Text(v)
	}
}

// Has reports whether key was set, even to an empty value. Use IsSet to
// ignore empty values.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the text value of key. List values are not returned.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Strings returns a list value; a text value becomes a single element list.
func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// IsSet reports whether key holds a non-empty value.
func (f Fields) IsSet(key string) bool {
	return !IsEmpty(f[key])
}

// Clone returns a shallow copy; list values share their backing arrays.
// A nil receiver yields nil.
func (f Fields) Clone() Fields {
	return maps.Clone(f)
}
