package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", raw: "2026-04-01T10:00:00Z", want: want},
		{name: "offset", raw: "2026-04-01T12:00:00+02:00", want: want},
		{name: "fractional seconds", raw: "2026-04-01T10:00:00.000123Z", want: want.Add(123 * time.Microsecond)},
		{name: "zone-less reads as utc", raw: "2026-04-01T10:00:00", want: want},
		{name: "space separated", raw: "2026-04-01 10:00:00", want: want},
		{name: "date only", raw: "2026-04-01", want: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty is zero", raw: "", want: time.Time{}},
		{name: "garbage", raw: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimestamp(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestApprovalTask_DecodeLenientTimestamps(t *testing.T) {
	payload := `[
		{"taskId": "T1", "status": "APPROVED", "createdAt": "2026-04-01T10:00:00", "actionedAt": "2026-04-01 12:30:00", "actionedBy": "u1"},
		{"taskId": "T2", "status": "PENDING_ACTIONABLE", "createdAt": "", "actionedAt": ""},
		{"taskId": "T3", "status": "PENDING_BLOCKED", "createdAt": null}
	]`

	var tasks []ApprovalTask
	if err := json.Unmarshal([]byte(payload), &tasks); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("decoded %d tasks, want 3", len(tasks))
	}

	if got := tasks[0].CreatedAt; !got.Equal(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("T1 createdAt = %v", got)
	}
	if tasks[0].ActionedAt == nil || !tasks[0].ActionedAt.Equal(time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)) {
		t.Errorf("T1 actionedAt = %v", tasks[0].ActionedAt)
	}
	if tasks[0].ActionedByID() != "u1" || tasks[0].Status != TaskStatusApproved {
		t.Errorf("T1 fields lost during decode: %+v", tasks[0])
	}
	if !tasks[1].CreatedAt.IsZero() || tasks[1].ActionedAt != nil {
		t.Errorf("T2 empty timestamps = %v, %v", tasks[1].CreatedAt, tasks[1].ActionedAt)
	}
	if !tasks[2].CreatedAt.IsZero() {
		t.Errorf("T3 null createdAt = %v", tasks[2].CreatedAt)
	}
}

func TestApprovalTask_DecodeRejectsGarbageTimestamp(t *testing.T) {
	var task ApprovalTask
	err := json.Unmarshal([]byte(`{"taskId": "T1", "createdAt": "soon"}`), &task)
	if err == nil {
		t.Fatal("expected an error for an unparseable timestamp")
	}
}

func TestInvoiceEvent_DecodeLenientTimestamp(t *testing.T) {
	payload := `{"eventId": "E1", "eventType": "DEAL_SUBMITTED", "actorId": null, "createdAt": "2026-04-01T10:00:00.5"}`

	var event InvoiceEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := time.Date(2026, 4, 1, 10, 0, 0, 500_000_000, time.UTC)
	if !event.CreatedAt.Equal(want) {
		t.Errorf("createdAt = %v, want %v", event.CreatedAt, want)
	}
	if event.EventType != EventTypeDealSubmitted || event.ActorID != nil {
		t.Errorf("fields lost during decode: %+v", event)
	}
}

func TestApprovalTask_RoundTripsThroughJSON(t *testing.T) {
	created := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	in := ApprovalTask{TaskID: "T1", CreatedAt: created, CandidateRoles: []string{"senior"}}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out ApprovalTask
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !out.CreatedAt.Equal(created) || out.TaskID != "T1" || len(out.CandidateRoles) != 1 {
		t.Errorf("round trip = %+v", out)
	}
}
