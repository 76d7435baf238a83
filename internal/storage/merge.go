package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeepMerge merges src into dst field by field. Object values recurse (an
// object is created in dst when missing or not an object); every other value,
// arrays and null included, overwrites. Keys absent from src keep dst's value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, sv := range src {
		sm, ok := sv.(map[string]any)
		if !ok {
			dst[k] = sv
			continue
		}
		dm, ok := dst[k].(map[string]any)
		if !ok {
			dm = map[string]any{}
		}
		dst[k] = DeepMerge(dm, sm)
	}
	return dst
}

// MergeJSON deep-merges the JSON object doc onto the JSON object defaults and
// returns the merged document.
func MergeJSON(defaults, doc []byte) ([]byte, error) {
	var base map[string]any
	if err := json.Unmarshal(defaults, &base); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	var over map[string]any
	if err := json.Unmarshal(doc, &over); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if over == nil {
		return nil, fmt.Errorf("decode document: not a JSON object")
	}
	merged, err := json.Marshal(DeepMerge(base, over))
	if err != nil {
		return nil, fmt.Errorf("encode merged: %w", err)
	}
	return merged, nil
}

// PruneJSON walks the JSON object doc and replaces every value that fits
// rejects with the value at the same path in defaults (or drops it when
// defaults has none). fits receives a document holding only the value under
// test at its original path. Objects recurse and arrays lose only their
// rejected elements, so one bad field costs that field alone. The returned
// paths name what was replaced, dotted, with [i] for array elements.
func PruneJSON(defaults, doc []byte, fits func(doc []byte) bool) ([]byte, []string, error) {
	var base map[string]any
	if err := json.Unmarshal(defaults, &base); err != nil {
		return nil, nil, fmt.Errorf("decode defaults: %w", err)
	}
	var over map[string]any
	if err := json.Unmarshal(doc, &over); err != nil {
		return nil, nil, fmt.Errorf("decode document: %w", err)
	}
	if over == nil {
		return nil, nil, fmt.Errorf("decode document: not a JSON object")
	}

	var dropped []string
	prune(base, over, nil, fits, &dropped)

	out, err := json.Marshal(over)
	if err != nil {
		return nil, nil, fmt.Errorf("encode pruned: %w", err)
	}
	return out, dropped, nil
}

func prune(defaults, doc map[string]any, path []string, fits func([]byte) bool, dropped *[]string) {
	for k, v := range doc {
		at := append(path[:len(path):len(path)], k)
		if fits(wrapAt(at, v)) {
			continue
		}
		dv, hasDefault := defaults[k]

		switch tv := v.(type) {
		case map[string]any:
			if dm, ok := dv.(map[string]any); ok || dv == nil {
				prune(dm, tv, at, fits, dropped)
				if fits(wrapAt(at, tv)) {
					continue
				}
			}
		case []any:
			kept := make([]any, 0, len(tv))
			for i, el := range tv {
				if fits(wrapAt(at, []any{el})) {
					kept = append(kept, el)
					continue
				}
				*dropped = append(*dropped, fmt.Sprintf("%s[%d]", strings.Join(at, "."), i))
			}
			if fits(wrapAt(at, kept)) {
				doc[k] = kept
				continue
			}
		}

		*dropped = append(*dropped, strings.Join(at, "."))
		if hasDefault {
			doc[k] = dv
		} else {
			delete(doc, k)
		}
	}
}

// wrapAt encodes v nested under path, e.g. ["player","xp"] gives
// {"player":{"xp":v}}.
func wrapAt(path []string, v any) []byte {
	for i := len(path) - 1; i >= 0; i-- {
		v = map[string]any{path[i]: v}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
