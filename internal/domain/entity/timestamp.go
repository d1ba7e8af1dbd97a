package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted from the platform. Zone-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp reads a platform timestamp. An empty value is the zero time.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// parseOptionalTimestamp maps null and empty values to nil
func parseOptionalTimestamp(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseTimestamp(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UnmarshalJSON decodes a task, accepting zone-less and empty timestamps
func (t *ApprovalTask) UnmarshalJSON(data []byte) error {
	type plain ApprovalTask
	aux := struct {
		*plain
		CreatedAt  string  `json:"createdAt"`
		ActionedAt *string `json:"actionedAt"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if t.CreatedAt, err = parseTimestamp(aux.CreatedAt); err != nil {
		return fmt.Errorf("task %s createdAt: %w", t.TaskID, err)
	}
	if t.ActionedAt, err = parseOptionalTimestamp(aux.ActionedAt); err != nil {
		return fmt.Errorf("task %s actionedAt: %w", t.TaskID, err)
	}
	return nil
}

// UnmarshalJSON decodes an event, accepting zone-less and empty timestamps
func (e *InvoiceEvent) UnmarshalJSON(data []byte) error {
	type plain InvoiceEvent
	aux := struct {
		*plain
		CreatedAt string `json:"createdAt"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = parseTimestamp(aux.CreatedAt); err != nil {
		return fmt.Errorf("event %s createdAt: %w", e.EventID, err)
	}
	return nil
}
