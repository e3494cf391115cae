package dto

import "encoding/json"

// Optional wraps a JSON field whose absence must be distinguishable from an
// explicit null. encoding/json invokes UnmarshalJSON only when the key is
// present in the payload, so Set doubles as the presence flag.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value as a pointer, nil for an explicit null. Meaningless
// unless Set is true.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
