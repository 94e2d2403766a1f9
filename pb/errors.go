package pb

import (
	"errors"
	"fmt"
)

var errInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// DecodeError reports malformed or truncated wire bytes.
type DecodeError struct {
	Message string
	Field   string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: field %s: %v", e.Message, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Message, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a message that cannot be represented on the wire.
type EncodeError struct {
	Message string
	Field   string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: field %s: %v", e.Message, e.Field, errInvalidUTF8)
}

// IsDecodeError checks if an error is or wraps a DecodeError
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}
