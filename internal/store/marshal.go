package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/gedcheck/internal/record"
)

// marshalEvent converts an event to canonical JSON TEXT, NULL when absent.
// A present but empty event is stored as "{}" so it stays distinct from NULL.
func marshalEvent(ev record.Event) (sql.NullString, error) {
	if ev == nil {
		return sql.NullString{}, nil
	}
	obj := make(map[string]any, len(ev))
	for k, v := range ev {
		obj[k] = v
	}
	data, err := record.MarshalCanonical(obj)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal event: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// marshalRefs converts a reference list to canonical JSON TEXT.
func marshalRefs(refs []string) (string, error) {
	if refs == nil {
		refs = []string{}
	}
	data, err := record.MarshalCanonical(refs)
	if err != nil {
		return "", fmt.Errorf("marshal refs: %w", err)
	}
	return string(data), nil
}

// unmarshalEvent parses event TEXT; NULL yields a nil event.
func unmarshalEvent(data sql.NullString) (record.Event, error) {
	if !data.Valid {
		return nil, nil
	}
	ev := record.Event{}
	if err := json.Unmarshal([]byte(data.String), &ev); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return ev, nil
}

// unmarshalRefs parses reference list TEXT; an empty list yields nil.
func unmarshalRefs(data string) ([]string, error) {
	var refs []string
	if err := json.Unmarshal([]byte(data), &refs); err != nil {
		return nil, fmt.Errorf("unmarshal refs: %w", err)
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return refs, nil
}
