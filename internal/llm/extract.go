package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the span of text from the first '{' to the last
// '}'. Models that answer in free text often wrap the object in prose or
// code fences. The span is not parsed; callers decode and validate it.
func ExtractJSONObject(text string) (json.RawMessage, bool) {
	start := strings.Index(text, "{")
	if start == -1 {
		return nil, false
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return nil, false
	}
	return json.RawMessage(text[start : end+1]), true
}
