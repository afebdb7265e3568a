package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnexpectedEventPayload is returned for bodies that carry no event array.
var ErrUnexpectedEventPayload = errors.New("events payload is neither an array nor an events/data wrapper")

// UpstreamEvent is an event as returned by the SEES API. Field names vary
// between endpoints, so the payload is kept loose and normalised by the
// event adapter.
type UpstreamEvent map[string]interface{}

// UpstreamEventList accepts a bare array or an object wrapping it under
// "events" or "data". Anything else, null included, is rejected.
type UpstreamEventList []UpstreamEvent

// UnmarshalJSON implements json.Unmarshaler.
func (l *UpstreamEventList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		bare := []UpstreamEvent{}
		if err := json.Unmarshal(trimmed, &bare); err != nil {
			return err
		}
		*l = bare
		return nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	for _, key := range []string{"events", "data"} {
		raw, ok := wrapped[key]
		if !ok || isJSONNull(raw) {
			continue
		}
		if first := bytes.TrimSpace(raw); len(first) == 0 || first[0] != '[' {
			return fmt.Errorf("%w: %q is not an array", ErrUnexpectedEventPayload, key)
		}
		list := []UpstreamEvent{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	return ErrUnexpectedEventPayload
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
