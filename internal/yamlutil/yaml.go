// Package yamlutil wraps YAML parsing to isolate the external dependency.
// JSON documents are valid YAML, so post files in either format go
// through the same decoder.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits input size to prevent memory exhaustion (default 8MB).
var MaxInputSize = 8 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrEmptyList      = errors.New("yamlutil: document holds an empty list")
)

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalList decodes a document holding either a single T or a list of
// T. Unknown fields are ignored: provider payloads carry far more fields
// than the caller reads.
func UnmarshalList[T any](data []byte) ([]T, error) {
	var top any
	if err := decode(data, &top); err != nil {
		return nil, err
	}

	if _, ok := top.([]any); !ok {
		var one T
		if err := decode(data, &one); err != nil {
			return nil, err
		}
		return []T{one}, nil
	}

	var many []T
	if err := decode(data, &many); err != nil {
		return nil, err
	}
	if len(many) == 0 {
		return nil, ErrEmptyList
	}
	return many, nil
}
