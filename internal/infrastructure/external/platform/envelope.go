package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the platform's standard response wrapper
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// decodeList accepts a bare JSON array or an envelope whose data is an array.
// A missing or null array decodes to an empty slice.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	var items []T
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
	} else {
		var env Envelope[[]T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode list envelope: %w", err)
		}
		items = env.Data
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeItem accepts an envelope whose data is the item, or the bare item
func decodeItem[T any](body []byte) (*T, error) {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(body)
	payload := trimmed
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &probe); err == nil && len(probe.Data) > 0 && !bytes.Equal(probe.Data, []byte("null")) {
			payload = probe.Data
		}
	}

	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &item, nil
}
