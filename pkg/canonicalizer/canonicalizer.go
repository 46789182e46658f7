/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package canonicalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalCanonical marshals the value into canonical JSON: object members are
// sorted lexicographically by name, separators carry no whitespace and numbers
// keep their original literal form. The value may be a []byte containing JSON,
// in which case it is canonicalized as is.
func MarshalCanonical(value interface{}) ([]byte, error) {
	valueBytes, ok := value.([]byte)

	if !ok {
		var err error

		valueBytes, err = json.Marshal(value)
		if err != nil {
			return nil, err
		}
	}

	parsed, err := unmarshalOrdered(valueBytes)
	if err != nil {
		return nil, err
	}

	return marshalSorted(parsed)
}

func unmarshalOrdered(data []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	return value, nil
}

func marshalSorted(value interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}

	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	// Encode terminates the value with a newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
