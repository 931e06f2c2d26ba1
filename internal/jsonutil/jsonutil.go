// Package jsonutil provides shared helpers for decoding JSON with
// context-wrapped errors.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ReadFile decodes the JSON file at path into v. A missing file reports
// found == false and no error; decode errors are wrapped with the path.
func ReadFile(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := UnmarshalWithContext(data, v, "decode "+path); err != nil {
		return false, err
	}
	return true, nil
}
