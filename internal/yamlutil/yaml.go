// Package yamlutil reads and writes the YAML config file with goccy/go-yaml.
// Decoding is size-limited and strict, and decode errors quote the
// offending source line.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/goccy/go-yaml"
)

// MaxSize bounds the documents DecodeStrict accepts.
const MaxSize = 1 << 20

var (
	ErrTooLarge = errors.New("YAML document too large")
	ErrNoTarget = errors.New("YAML target must be a non-nil pointer")
)

// DecodeStrict decodes data into v, which must be a non-nil pointer.
// Unknown keys are errors. A blank document leaves v untouched.
func DecodeStrict(data []byte, v any) error {
	if len(data) > MaxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxSize)
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNoTarget
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return errors.New(yaml.FormatError(err, false, true))
	}
	return nil
}

// Encode renders v as YAML indented by two spaces.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return out, nil
}
