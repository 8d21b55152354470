package utils

// MergeMaps overlays over onto base key by key and returns a new map; the
// inputs are never modified. Keys present in over win, keys only in base
// survive. Both maps may be nil; a merge of two nil maps is nil so callers
// can keep treating absent metadata as absent.
func MergeMaps(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	merged := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}
