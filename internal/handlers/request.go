package handlers

import (
	"bytes"
	"encoding/json"
	"io"
)

// parseJSONObject decodes body as a JSON object. Empty, malformed and
// non-object bodies all yield an empty object. Numbers are kept as
// json.Number so they re-encode exactly as received.
func parseJSONObject(body []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return map[string]any{}
	}
	if _, err := dec.Token(); err != io.EOF {
		return map[string]any{}
	}
	return payload
}

// textField returns payload[key] as text. Values JSON treats as empty
// (null, false, 0, "", [] and {}) yield "". Other non-string values are
// rendered as their JSON literal.
func textField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return ""
		}
		return v.String()
	case []any:
		if len(v) == 0 {
			return ""
		}
		return compactJSON(v)
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		return compactJSON(v)
	default:
		return ""
	}
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
