package nocodb

import (
	"encoding/json"
	"fmt"
)

// EncodeRecord serializes a single record to a JSON object. When includeID
// is false the reserved id field is stripped, since the server assigns ids
// on create. Untyped Record maps are serialized verbatim either way; a
// caller holding a raw map controls its own fields.
//
// time.Time values serialize to their standard JSON string form.
func EncodeRecord(item any, includeID bool) ([]byte, error) {
	switch v := item.(type) {
	case Record:
		return marshalRecord(v)
	case map[string]any:
		return marshalRecord(v)
	}

	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	if includeID {
		return data, nil
	}

	return stripID(data)
}

// EncodeRecords serializes a list of records to a JSON array for the bulk
// endpoint variant. The id field is stripped from every element unless
// includeID is set, which bulk updates use to identify the rows to modify.
func EncodeRecords[T any](items []T, includeID bool) ([]byte, error) {
	elements := make([]json.RawMessage, 0, len(items))

	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding record: %w", err)
		}

		if !includeID {
			data, err = stripID(data)
			if err != nil {
				return nil, err
			}
		}

		elements = append(elements, data)
	}

	payload, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("encoding bulk payload: %w", err)
	}

	return payload, nil
}

// stripID removes the reserved id field from an encoded JSON object.
func stripID(data []byte) ([]byte, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, fmt.Errorf("decoding record fields: %w", err)
	}

	delete(fields, IDField)

	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("re-encoding record fields: %w", err)
	}

	return stripped, nil
}

// marshalRecord serializes an untyped mapping verbatim.
func marshalRecord(record map[string]any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	return data, nil
}
