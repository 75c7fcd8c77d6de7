package endpoint

import (
	"encoding/json"
)

// decodeBody turns a request body into a JSON object. Nil, unparsable and
// non-object bodies all read as an empty object.
func decodeBody(body any) map[string]any {
	var raw []byte
	switch b := body.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return b
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	case json.RawMessage:
		raw = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return map[string]any{}
		}
		raw = data
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return map[string]any{}
	}
	return obj
}
