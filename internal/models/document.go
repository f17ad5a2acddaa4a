package models

// recordPaths hold user-keyed records. A stored value replaces the default wholesale
// instead of being merged key by key.
var recordPaths = map[string]bool{
	"entries":                true,
	"profile.habitLimits":    true,
	"profile.habitOverrides": true,
}

// MergeDocument deep-merges overlay over base and returns a new document. Nested objects
// merge recursively, null overlay values count as absent, everything else replaces.
func MergeDocument(base, overlay map[string]any) map[string]any {
	return mergeAt("", base, overlay)
}

func mergeAt(path string, base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if v == nil {
			continue
		}
		p := k
		if path != "" {
			p = path + "." + k
		}
		if !recordPaths[p] {
			if bm, ok := out[k].(map[string]any); ok {
				if om, ok := v.(map[string]any); ok {
					out[k] = mergeAt(p, bm, om)
					continue
				}
			}
		}
		out[k] = v
	}
	return out
}
