package kiali

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

func decodeSpec(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode config spec: %w", err)
	}
	return nil
}

// linearizeJSON flattens a nested spec fragment into the single-line string
// the detail tables render: "key:value" tokens, nested values expanded in
// place, keys sorted for a stable result.
func linearizeJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return linearize(value)
}

func linearize(value any) string {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		tokens := make([]string, 0, len(keys))
		for _, key := range keys {
			tokens = append(tokens, fmt.Sprintf("%s:%s", key, linearize(v[key])))
		}
		return strings.Join(tokens, " ")
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			tokens = append(tokens, linearize(item))
		}
		return strings.Join(tokens, " ")
	case nil:
		return ""
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// linearizeSubsets renders destination rule subsets the way the UI does:
// one "name:keyvalue" token per subset, label key and value concatenated
// (e.g. subset v1 with labels {version: v1} becomes "v1:versionv1").
func linearizeSubsets(subsets []subsetItem) string {
	tokens := make([]string, 0, len(subsets))
	for _, subset := range subsets {
		if subset.Name == "" || len(subset.Labels) == 0 {
			continue
		}
		keys := make([]string, 0, len(subset.Labels))
		for key := range subset.Labels {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		values := make([]string, 0, len(keys))
		for _, key := range keys {
			values = append(values, key+subset.Labels[key])
		}
		tokens = append(tokens, subset.Name+":"+strings.Join(values, ","))
	}
	return strings.Join(tokens, " ")
}
