// Package decode converts loosely typed values into concrete structs via JSON.
package decode

import "encoding/json"

// FromMap converts a map such as observer event data into T.
func FromMap[T any](data map[string]any) (T, error) {
	return From[T](data)
}

// From converts any JSON-representable value into T.
func From[T any](v any) (T, error) {
	var result T
	b, err := json.Marshal(v)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
