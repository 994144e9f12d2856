package models

import "encoding/json"

// OptionalString tracks whether a JSON field was present at all, so that an
// explicit null can be told apart from an omitted field.
type OptionalString struct {
	Set   bool
	Value *string
}

func SetString(s string) OptionalString { return OptionalString{Set: true, Value: &s} }

func NullString() OptionalString { return OptionalString{Set: true} }

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// IsZero lets `omitzero` drop fields that were never set.
func (o OptionalString) IsZero() bool { return !o.Set }
