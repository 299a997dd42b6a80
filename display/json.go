package display

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON marshals v as indented JSON. HTML characters and non-ASCII
// text are written as-is.
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
