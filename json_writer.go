package estate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they are
// appended in. Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a field, marshaled with json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(raw)
	w.WriteByte(',')
	return w
}

// Optional adds a field unless value is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Amount adds a non-zero amount as an exact JSON number, without its currency.
func (w *jsonObjectWriter) Amount(key string, m Money) *jsonObjectWriter {
	if m.IsZero() {
		return w
	}
	return w.Append(key, json.Number(m.value.String()))
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	obj := make([]byte, 0, len(content)+2)
	obj = append(obj, '{')
	obj = append(obj, content...)
	return append(obj, '}'), nil
}

// writeLine writes the object to out as one JSONL line.
func (w *jsonObjectWriter) writeLine(out io.Writer) error {
	obj, err := w.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = out.Write(append(obj, '\n'))
	return err
}
