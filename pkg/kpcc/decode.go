package kpcc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// errSchema marks decode failures caused by a payload that is valid JSON but
// does not match the expected shape.
var errSchema = errors.New("schema mismatch")

// errNullPayload marks an envelope whose payload field is JSON null.
var errNullPayload = errors.New("payload is null")

// decode parses data into a T.
func decode[T any](data []byte) (T, error) {
	var value T
	err := safely(func() error {
		return json.Unmarshal(data, &value)
	})
	return value, err
}

// decodeEnvelope parses a {"<field>": <T>} object and returns the payload.
// A missing field is a schema error; a null field is errNullPayload.
func decodeEnvelope[T any](data []byte, field string) (T, error) {
	var zero T
	raw, err := envelopeField(data, field)
	if err != nil {
		return zero, err
	}
	return decode[T](raw)
}

// decodeEnvelopeRequired is decodeEnvelope for single resources, where a
// null payload means there is nothing to return.
func decodeEnvelopeRequired[T any](data []byte, field string) (T, error) {
	var zero T
	raw, err := envelopeField(data, field)
	if err != nil {
		return zero, err
	}
	if isNull(raw) {
		return zero, fmt.Errorf("%q: %w", field, errNullPayload)
	}
	return decode[T](raw)
}

func envelopeField(data []byte, field string) (json.RawMessage, error) {
	fields, err := decode[map[string]json.RawMessage](data)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: envelope is null", errSchema)
	}
	raw, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: envelope has no %q field", errSchema, field)
	}
	return raw, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// safely runs fn and converts a panic into an error.
func safely(fn func() error) error {
	var (
		err     error
		catcher panics.Catcher
	)
	catcher.Try(func() { err = fn() })
	if recovered := catcher.Recovered(); recovered != nil {
		return fmt.Errorf("decoder panic: %w", recovered.AsError())
	}
	return err
}

// classifyDecodeError maps a decode failure onto a Kind.
func classifyDecodeError(err error) Kind {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errNullPayload):
		return KindDataUnavailable
	case errors.Is(err, errSchema), errors.As(err, &typeErr):
		return KindDecoding
	default:
		// *json.SyntaxError (body is not JSON) and recovered panics.
		return KindOther
	}
}
