package settlement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose keys keep their insertion
// order, unlike a map. Line oriented exports rely on the stable order to
// diff cleanly under version control.
type jsonObjectWriter struct {
	buf bytes.Buffer
}

// Append marshals value and adds it under key.
func (w *jsonObjectWriter) Append(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cannot marshal %q: %w", key, err)
	}
	if w.buf.Len() > 0 {
		w.buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("cannot marshal key %q: %w", key, err)
	}
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(data)
	return nil
}

// Optional appends the pair only when value is not the zero value of its
// type, keeping lines free of empty fields.
func (w *jsonObjectWriter) Optional(key string, value any) error {
	if value == nil || reflect.ValueOf(value).IsZero() {
		return nil
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	out.Write(w.buf.Bytes())
	out.WriteByte('}')
	return out.Bytes(), nil
}

var _ json.Marshaler = (*jsonObjectWriter)(nil)
