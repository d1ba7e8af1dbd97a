package approval

import (
	"sort"
	"strings"
	"time"

	"github.com/garyjia/finance-console/internal/domain/entity"
)

// SystemActor is shown for events without an actor
const SystemActor = "System"

var eventLabels = map[entity.EventType]string{
	entity.EventTypeInvoiceSubmitted: "Invoice created",
	entity.EventTypeDealSubmitted:    "Deal submitted",
	entity.EventTypeWorkflowCreated:  "Approval workflow created",
	entity.EventTypeApprovalActioned: "Approval action",
}

// TimelineItem is one entry of an invoice's activity feed
type TimelineItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
	Reason    *string   `json:"reason"`
}

// BuildTimeline orders events chronologically and labels them.
// Events with equal timestamps keep their relative order.
func BuildTimeline(events []entity.InvoiceEvent) []TimelineItem {
	sorted := make([]entity.InvoiceEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	items := make([]TimelineItem, 0, len(sorted))
	for _, event := range sorted {
		actor := SystemActor
		if event.ActorID != nil && *event.ActorID != "" {
			actor = *event.ActorID
		}
		items = append(items, TimelineItem{
			ID:        event.EventID,
			Title:     EventLabel(event.EventType),
			Actor:     actor,
			CreatedAt: event.CreatedAt,
			Reason:    event.Reason,
		})
	}
	return items
}

// EventLabel returns the display label of an event code. Unknown codes are
// humanized: underscores become spaces and the result is lower-cased.
func EventLabel(eventType entity.EventType) string {
	if label, ok := eventLabels[eventType]; ok {
		return label
	}
	return strings.ToLower(strings.ReplaceAll(string(eventType), "_", " "))
}
