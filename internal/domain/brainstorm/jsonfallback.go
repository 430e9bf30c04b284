package brainstorm

import (
	"encoding/json"
	"strings"
)

// Safety limits for model produced text fed to the fallback parser.
const (
	maxFallbackContentLen = 64 * 1024
	maxFallbackNames      = 100
	maxFallbackNameLen    = 64
)

// ParseCandidateNames attempts to read an uncooperative model reply as a
// JSON array of candidate name strings. Surrounding prose is tolerated by
// slicing between the first '[' and the last ']'. Returns nil when no valid,
// non-empty array can be extracted.
func ParseCandidateNames(text string) []string {
	if text == "" || len(text) > maxFallbackContentLen {
		return nil
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}
	slice := text[start : end+1]

	var names []string
	if err := json.Unmarshal([]byte(slice), &names); err != nil {
		// Tolerate mixed arrays by keeping only the string entries.
		var loose []interface{}
		if err := json.Unmarshal([]byte(slice), &loose); err != nil {
			return nil
		}
		for _, v := range loose {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > maxFallbackNameLen {
			continue
		}
		out = append(out, name)
		if len(out) == maxFallbackNames {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
