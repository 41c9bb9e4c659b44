package merge

import (
	"encoding/json"
	"fmt"
)

// MergeJSON deep-merges src (template content) into dst (existing
// destination content) and returns the result formatted with two-space
// indentation and a trailing newline. Parse failures on either side are
// fatal; no partial merge is written.
func MergeJSON(dst, src []byte) ([]byte, error) {
	var dstVal any
	if err := json.Unmarshal(dst, &dstVal); err != nil {
		return nil, fmt.Errorf("parsing destination JSON: %w", err)
	}

	var srcVal any
	if err := json.Unmarshal(src, &srcVal); err != nil {
		return nil, fmt.Errorf("parsing template JSON: %w", err)
	}

	merged := mergeValues(dstVal, srcVal)

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding merged JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// mergeValues combines two decoded JSON values. Objects merge key-wise,
// arrays become the deduplicated union, anything else resolves in favor
// of src.
func mergeValues(dst, src any) any {
	if dstMap, ok := dst.(map[string]any); ok {
		if srcMap, ok := src.(map[string]any); ok {
			for k, v := range srcMap {
				if existing, present := dstMap[k]; present {
					dstMap[k] = mergeValues(existing, v)
				} else {
					dstMap[k] = v
				}
			}
			return dstMap
		}
	}

	if dstArr, ok := dst.([]any); ok {
		if srcArr, ok := src.([]any); ok {
			return unionArrays(dstArr, srcArr)
		}
	}

	return src
}

// unionArrays returns the set union of two arrays, preserving first-seen
// order. Elements are compared by their canonical JSON encoding so that
// equal objects and numbers deduplicate regardless of source.
func unionArrays(a, b []any) []any {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]any, 0, len(a)+len(b))

	appendUnique := func(vals []any) {
		for _, v := range vals {
			key := canonicalKey(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}

	appendUnique(a)
	appendUnique(b)
	return out
}

func canonicalKey(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Decoded JSON values always re-encode; this is unreachable in
		// practice but must not panic a merge.
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
