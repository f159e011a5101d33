package domain

// Settings is the open key-value payload of a section. Its shape depends on
// the section type; the editor never inspects it. Values are expected to be
// JSON-shaped (maps, slices, scalars).
type Settings map[string]any

// Clone deep-copies the settings bag. A nil bag clones to an empty one.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge shallow-merges partial into s, cloning the incoming values so the
// caller keeps no reference into the tree.
func (s Settings) Merge(partial map[string]any) Settings {
	if s == nil {
		s = Settings{}
	}
	for k, v := range partial {
		s[k] = cloneValue(v)
	}
	return s
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Settings:
		return t.Clone()
	case map[string]any:
		return map[string]any(Settings(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i := range t {
			out[i] = map[string]any(Settings(t[i]).Clone())
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
