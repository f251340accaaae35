package orb

import (
	"encoding/json"
	"time"
)

// Record is one dataset row: a flat JSON object keyed by column name.
// The sensor adds columns between firmware releases, so unknown keys are
// preserved rather than dropped.
type Record map[string]any

// Record keys fixed by the Local API.
const (
	timestampKey   = "timestamp"
	networkTypeKey = "network_type"
	orbIDKey       = "orb_id"
)

// Timestamp returns the record's epoch-millisecond timestamp. The boolean
// reports whether the record carries a usable numeric timestamp; the Client
// rejects responses where it does not.
func (r Record) Timestamp() (int64, bool) {
	return numericField(r, timestampKey)
}

// Time returns the record timestamp as a UTC time.
func (r Record) Time() (time.Time, bool) {
	ms, ok := r.Timestamp()
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

// NetworkType returns the record's network_type dimension.
func (r Record) NetworkType() (NetworkType, bool) {
	value, ok := numericField(r, networkTypeKey)
	if !ok {
		return NetworkTypeUnknown, false
	}
	return NetworkType(value), true
}

// OrbID returns the identity of the sensor that produced the record, or an
// empty string when the record does not carry one.
func (r Record) OrbID() string {
	value, ok := r[orbIDKey].(string)
	if !ok {
		return ""
	}
	return value
}

func numericField(r Record, key string) (int64, bool) {
	value, ok := r[key]
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
