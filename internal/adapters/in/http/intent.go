package http

import (
	"fmt"
	"strings"
)

// Intent is the closed set of conversation intents the agent can detect.
type Intent int

const (
	IntentNewOrder Intent = iota + 1
	IntentAddItems
	IntentRemoveItems
	IntentCompleteOrder
	IntentTrackOrder
	IntentStoreHours
)

// Agent display names, as configured in the conversation agent.
var intentsByDisplayName = map[string]Intent{
	"new.order":                               IntentNewOrder,
	"order.add - context: ongoing order":      IntentAddItems,
	"order.remove - context: ongoing order":   IntentRemoveItems,
	"order.complete - context: ongoing-order": IntentCompleteOrder,
	"track.order - context: ongoing-tracking": IntentTrackOrder,
	"store.hours":                             IntentStoreHours,
}

// ParseIntent maps an agent display name to an Intent.
func ParseIntent(displayName string) (Intent, error) {
	intent, ok := intentsByDisplayName[strings.TrimSpace(displayName)]
	if !ok {
		return 0, fmt.Errorf("unknown intent %q", displayName)
	}
	return intent, nil
}

// String returns a short label used in logs and metrics.
func (i Intent) String() string {
	switch i {
	case IntentNewOrder:
		return "new_order"
	case IntentAddItems:
		return "add_items"
	case IntentRemoveItems:
		return "remove_items"
	case IntentCompleteOrder:
		return "complete_order"
	case IntentTrackOrder:
		return "track_order"
	case IntentStoreHours:
		return "store_hours"
	}
	return "unknown"
}
