package payment

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Event is the business-relevant content of a webhook delivery after
// defensive extraction from the processor's loosely structured payload.
type Event struct {
	Reference             string
	Status                string
	ExternalTransactionID string
}

// ExtractEvent decodes the raw webhook body and pulls out reference,
// status and transaction id. The processor has been observed sending at
// least three envelope shapes ({data:{object:{...}}}, {transaction:{...}}
// or a flat object) and nesting a custom metadata block at arbitrary
// depth, so extraction is a depth-first search over the resolved object.
//
// The application-assigned eej_ref key takes priority over the generic
// reference key, which is processor-owned and may collide in format.
func ExtractEvent(body []byte) (Event, error) {
	var payload any
	if len(body) == 0 {
		payload = map[string]any{}
	} else if err := json.Unmarshal(body, &payload); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	tx := resolveEnvelope(payload)

	ref := deepFind(tx, []string{"eej_ref"})
	if ref == nil {
		ref = deepFind(tx, []string{"reference"})
	}

	return Event{
		Reference:             stringify(ref),
		Status:                stringify(deepFind(tx, []string{"status"})),
		ExternalTransactionID: stringify(deepFind(tx, []string{"id"})),
	}, nil
}

// resolveEnvelope unwraps the known envelope shapes, falling back to the
// payload itself.
func resolveEnvelope(payload any) any {
	obj, ok := payload.(map[string]any)
	if !ok {
		return payload
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if inner, ok := data["object"]; ok && inner != nil {
			return inner
		}
	}
	if tx, ok := obj["transaction"]; ok && tx != nil {
		return tx
	}
	return payload
}

// deepFind walks the decoded payload depth first and returns the first
// non-nil value stored under any of the wanted keys. Keys on the current
// object win over nested occurrences; list elements are searched in order.
func deepFind(node any, keys []string) any {
	switch v := node.(type) {
	case map[string]any:
		for _, k := range keys {
			if val, ok := v[k]; ok && val != nil {
				return val
			}
		}
		for _, child := range v {
			if res := deepFind(child, keys); res != nil {
				return res
			}
		}
	case []any:
		for _, item := range v {
			if res := deepFind(item, keys); res != nil {
				return res
			}
		}
	}
	return nil
}

// stringify renders scalar payload values the way the processor sends
// them: strings as-is, numeric ids without a decimal point.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
