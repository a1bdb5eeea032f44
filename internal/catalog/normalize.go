// internal/catalog/normalize.go
//
// Decoding helpers for the types column, which has existed in two storage
// shapes over the catalog's life: a JSON array (`["bug","poison"]`) and a
// plain comma-separated string (`bug,poison`). Both decode to the same
// slot-ordered slice; "none" entries and blanks are dropped.

package catalog

import (
	"encoding/json"
	"strings"
)

// decodeTypes parses a raw types column value into slot-ordered labels.
func decodeTypes(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return cleanTypes(arr)
		}
		// fall through to the comma split on malformed JSON
	}

	return cleanTypes(strings.Split(s, ","))
}

// cleanTypes lowercases, trims, and drops empty/"none" labels.
func cleanTypes(in []string) []string {
	var out []string
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || t == "none" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// encodeTypes serializes labels for storage (JSON array form).
func encodeTypes(types []string) string {
	if len(types) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(types)
	return string(b)
}
