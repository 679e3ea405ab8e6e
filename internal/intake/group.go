package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// BatchKey is the object key a batch of groups may be wrapped under.
const BatchKey = "bookings"

var (
	ErrEmptyPayload       = errors.New("empty booking payload")
	ErrUnsupportedPayload = errors.New("booking payload must be an object or a list of objects")
)

// Group is one client-submitted booking group.
type Group struct {
	UserCode Field `json:"user_code"`
	Name     Field `json:"name"`
	Mobile   Field `json:"mobile"`
	Seats    Field `json:"seats"`
}

// Normalized holds the three ordered sequences extracted from a Group.
type Normalized struct {
	UserCode string
	Names    []string
	Mobiles  []string
	Seats    []int
}

func (g Group) Normalize() Normalized {
	return Normalized{
		UserCode: g.UserCode.Text(),
		Names:    NormalizeNames(g.Name),
		Mobiles:  NormalizeMobiles(g.Mobile),
		Seats:    NormalizeSeats(g.Seats),
	}
}

// ParseGroups decodes a request body holding a single group, a list of groups,
// or an object wrapping a list under BatchKey.
func ParseGroups(body []byte) ([]Group, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	switch trimmed[0] {
	case '[':
		return decodeList(trimmed)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("invalid booking payload: %w", err)
		}
		if wrapped, ok := envelope[BatchKey]; ok {
			if inner := bytes.TrimSpace(wrapped); len(inner) > 0 && inner[0] == '[' {
				return decodeList(inner)
			}
		}

		var group Group
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return nil, fmt.Errorf("invalid booking payload: %w", err)
		}
		return []Group{group}, nil
	default:
		return nil, ErrUnsupportedPayload
	}
}

func decodeList(data []byte) ([]Group, error) {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPayload, err)
	}
	return groups, nil
}
