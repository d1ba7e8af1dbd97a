package entity

import "time"

// InvoiceEvent is one append-only audit record the platform keeps per invoice.
// A nil ActorID means the event was system-initiated.
type InvoiceEvent struct {
	EventID           string    `json:"eventId"`
	EventType         EventType `json:"eventType"`
	ExternalInvoiceID string    `json:"externalInvoiceId"`
	InvoiceID         string    `json:"invoiceId"`
	FromStatus        *string   `json:"fromStatus"`
	ToStatus          *string   `json:"toStatus"`
	ActorType         string    `json:"actorType"`
	ActorID           *string   `json:"actorId"`
	Reason            *string   `json:"reason"`
	PayloadJSON       *string   `json:"payloadJson"`
	CreatedAt         time.Time `json:"createdAt"`
}

// EventType is a free-form event code. Only a handful are known to the console.
type EventType string

const (
	EventTypeInvoiceSubmitted EventType = "INVOICE_SUBMITTED"
	EventTypeDealSubmitted    EventType = "DEAL_SUBMITTED"
	EventTypeWorkflowCreated  EventType = "WORKFLOW_CREATED"
	EventTypeApprovalActioned EventType = "APPROVAL_ACTIONED"
)

// String returns the string representation of the event type
func (t EventType) String() string {
	return string(t)
}
