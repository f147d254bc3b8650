package timp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	acceptHeader = "application/timp.timp-v1"
	apiKeyHeader = "Api-Access-Key"
	dateLayout   = "2006-01-02"
)

// Endpoint names used for metrics and error messages.
const (
	EndpointCenters    = "branch_buildings"
	EndpointActivities = "activities"
	EndpointAdmissions = "admissions"
)

// collection is the envelope TIMP wraps paginated listings in.
type collection[T any] struct {
	Collection []T `json:"collection"`
}

// decodeList accepts either a bare JSON array or a {"collection": [...]}
// object. Any other object shape decodes to an empty list.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return items, nil
	}
	var wrapped collection[T]
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding collection: %w", err)
	}
	if wrapped.Collection == nil {
		return []T{}, nil
	}
	return wrapped.Collection, nil
}
