package services

import (
	"encoding/json"
	"net/http"
)

// envelope normalizes the backend's inconsistent response shapes: some
// endpoints carry a success flag, some don't, and list fields vary by name.
type envelope struct {
	status      int
	contentType string
	raw         []byte
	fields      map[string]json.RawMessage
}

func parseEnvelope(status int, contentType string, raw []byte) *envelope {
	env := &envelope{status: status, contentType: contentType, raw: raw}
	// Non-object bodies leave fields nil; every accessor tolerates that.
	_ = json.Unmarshal(raw, &env.fields)
	return env
}

// httpOK reports a 2xx status.
func (e *envelope) httpOK() bool {
	return e.status >= http.StatusOK && e.status < http.StatusMultipleChoices
}

// ok is httpOK plus a success flag that is either absent or true.
func (e *envelope) ok() bool {
	if !e.httpOK() {
		return false
	}
	v, present := e.flag("success")
	return !present || v
}

func (e *envelope) flag(name string) (value, present bool) {
	raw, ok := e.fields[name]
	if !ok {
		return false, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, true
	}
	return value, true
}

// message returns the backend's error text, or fallback.
func (e *envelope) message(fallback string) string {
	for _, name := range []string{"error", "message", "mensaje"} {
		var s string
		if raw, ok := e.fields[name]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return fallback
}

// decode fills dst from the first of names that is present and non-null.
// It reports whether any field was used.
func (e *envelope) decode(dst any, names ...string) bool {
	for _, name := range names {
		raw, ok := e.fields[name]
		if !ok || string(raw) == "null" {
			continue
		}
		if json.Unmarshal(raw, dst) == nil {
			return true
		}
	}
	return false
}

// passthrough returns the body as a generic object.
func (e *envelope) passthrough() map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal(e.raw, &out)
	return out
}

// list decodes a named array field, defaulting to an empty slice.
func list[T any](e *envelope, names ...string) []T {
	var items []T
	if !e.decode(&items, names...) || items == nil {
		return []T{}
	}
	return items
}
