package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidJSON = errors.New("AI returned invalid JSON format")

// CleanJSON trims the reply and removes markdown code fences around it
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}

	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}

// DecodeObject checks that the reply is a single JSON object and returns it compacted
func DecodeObject(reply string) (json.RawMessage, error) {
	return decode(reply, '{')
}

// DecodeArray checks that the reply is a single JSON array and returns it compacted.
// An object with a single array field, like {"suggestions": [...]}, is unwrapped.
func DecodeArray(reply string) (json.RawMessage, error) {
	obj, err := DecodeObject(reply)
	if err != nil {
		return decode(reply, '[')
	}

	var fields map[string]json.RawMessage
	if err = json.Unmarshal(obj, &fields); err != nil || len(fields) != 1 {
		return nil, ErrInvalidJSON
	}

	for _, value := range fields {
		if len(value) == 0 || value[0] != '[' {
			return nil, ErrInvalidJSON
		}

		return value, nil
	}

	return nil, ErrInvalidJSON
}

func decode(reply string, opening byte) (json.RawMessage, error) {
	clean := CleanJSON(reply)
	if clean == "" || clean[0] != opening {
		return nil, ErrInvalidJSON
	}

	if !json.Valid([]byte(clean)) {
		return nil, ErrInvalidJSON
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(clean)); err != nil {
		return nil, fmt.Errorf("compact reply: %w", ErrInvalidJSON)
	}

	return buf.Bytes(), nil
}
