// Package reconcile normalizes the execution service's heterogeneous order
// status payloads and matches them back to locally tracked trades. Every
// entry point is total: unrecognized shapes degrade to the unknown status,
// never to an error.
package reconcile

import (
	"encoding/json"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// StatusUpdate is the normalized result of a status poll. An empty OrderID
// means the payload carried no usable identifier; callers must treat that as
// "no update" rather than matching it against anything.
type StatusUpdate struct {
	OrderID string
	Status  types.OrderStatus
}

// Matches reports whether the update identifies the given order. Empty ids
// never match.
func (u StatusUpdate) Matches(orderID string) bool {
	return u.OrderID != "" && u.OrderID == orderID
}

// Extract normalizes a status-poll payload. Two shapes are recognized:
//
//   - list form: [ { "order": { "order": {"oid": ...}, "status": "open" } } ]
//     with open→resting, filled→filled, canceled→canceled, else unknown;
//   - nested-response form: { "response": { "data": { "statuses": [
//     {"resting"|"filled"|"canceled": {"oid"|"order_id": ...}} ] } } }.
//
// Anything else yields an absent id with the unknown status.
func Extract(raw json.RawMessage) StatusUpdate {
	unknown := StatusUpdate{Status: types.StatusUnknown}
	if len(raw) == 0 {
		ExtractTotal.WithLabelValues("none", string(types.StatusUnknown)).Inc()
		return unknown
	}

	var payload interface{}
	if err := gojson.Unmarshal(raw, &payload); err != nil {
		ExtractTotal.WithLabelValues("none", string(types.StatusUnknown)).Inc()
		return unknown
	}

	if upd, ok := extractListForm(payload); ok {
		ExtractTotal.WithLabelValues("list", string(upd.Status)).Inc()
		return upd
	}

	if upd, ok := extractNestedForm(payload); ok {
		ExtractTotal.WithLabelValues("nested", string(upd.Status)).Inc()
		return upd
	}

	ExtractTotal.WithLabelValues("none", string(types.StatusUnknown)).Inc()
	return unknown
}

// extractListForm handles the polling shape: a non-empty array whose first
// element carries order.order.oid and order.status.
func extractListForm(payload interface{}) (StatusUpdate, bool) {
	list, ok := payload.([]interface{})
	if !ok || len(list) == 0 {
		return StatusUpdate{}, false
	}

	first, ok := list[0].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	order, ok := first["order"].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	inner, ok := order["order"].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	id := stringifyID(inner["oid"])
	statusStr, _ := order["status"].(string)

	return StatusUpdate{
		OrderID: id,
		Status:  mapPollStatus(statusStr),
	}, true
}

// extractNestedForm handles the submission-response shape: exactly one of
// three mutually exclusive status keys under response.data.statuses[0].
func extractNestedForm(payload interface{}) (StatusUpdate, bool) {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	response, ok := obj["response"].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	data, ok := response["data"].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	statuses, ok := data["statuses"].([]interface{})
	if !ok || len(statuses) == 0 {
		return StatusUpdate{}, false
	}

	entry, ok := statuses[0].(map[string]interface{})
	if !ok {
		return StatusUpdate{}, false
	}

	for _, status := range []types.OrderStatus{types.StatusResting, types.StatusFilled, types.StatusCanceled} {
		detail, present := entry[string(status)]
		if !present {
			continue
		}

		upd := StatusUpdate{Status: status}
		if fields, ok := detail.(map[string]interface{}); ok {
			upd.OrderID = stringifyID(fields["oid"])
			if upd.OrderID == "" {
				upd.OrderID = stringifyID(fields["order_id"])
			}
		}
		return upd, true
	}

	return StatusUpdate{}, false
}

// SubmissionStatus reads the normalized status out of a submission response:
// the single key of the first entry under hl_response.response.data.statuses.
// A missing or unrecognized path degrades to unknown; a malformed venue
// response must not abort an otherwise successful submission.
func SubmissionStatus(resp *types.PlaceOrderResponse) types.OrderStatus {
	if resp == nil || len(resp.HLResponse) == 0 {
		return types.StatusUnknown
	}

	upd := Extract(resp.HLResponse)
	return upd.Status
}

// mapPollStatus maps the exchange's open-order vocabulary onto the ledger's.
func mapPollStatus(s string) types.OrderStatus {
	switch s {
	case "open":
		return types.StatusResting
	case "filled":
		return types.StatusFilled
	case "canceled":
		return types.StatusCanceled
	default:
		return types.StatusUnknown
	}
}

// stringifyID renders an order id that may arrive as a JSON number or string.
func stringifyID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
