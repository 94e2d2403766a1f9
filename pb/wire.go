package pb

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is a value that can cross the wire in its binary form.
type Message interface {
	Marshal() ([]byte, error)
	Unmarshal(b []byte) error
}

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindEnum
)

func (k fieldKind) wireType() protowire.Type {
	if k == kindEnum {
		return protowire.VarintType
	}
	return protowire.BytesType
}

// field describes one numbered field of message M.
type field[M any] struct {
	num  protowire.Number
	name string
	kind fieldKind
	str  func(*M) *string
	enum func(*M) *int32
}

func stringField[M any](num protowire.Number, name string, ref func(*M) *string) field[M] {
	return field[M]{num: num, name: name, kind: kindString, str: ref}
}

func enumField[M any](num protowire.Number, name string, ref func(*M) *int32) field[M] {
	return field[M]{num: num, name: name, kind: kindEnum, enum: ref}
}

// schema is the field table of a message, ordered by field number.
type schema[M any] struct {
	message string
	fields  []field[M]
	byNum   map[protowire.Number]int
}

func newSchema[M any](message string, fields ...field[M]) *schema[M] {
	s := &schema[M]{
		message: message,
		fields:  fields,
		byNum:   make(map[protowire.Number]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := s.byNum[f.num]; dup {
			panic(fmt.Sprintf("pb: %s: duplicate field number %d", message, f.num))
		}
		if i > 0 && fields[i-1].num >= f.num {
			panic(fmt.Sprintf("pb: %s: field %d out of order", message, f.num))
		}
		s.byNum[f.num] = i
	}
	return s
}

// marshal emits every non-default field in field-number order.
func (s *schema[M]) marshal(m *M) ([]byte, error) {
	var b []byte
	for _, f := range s.fields {
		switch f.kind {
		case kindString:
			v := *f.str(m)
			if v == "" {
				continue
			}
			if !utf8.ValidString(v) {
				return nil, &EncodeError{Message: s.message, Field: f.name}
			}
			b = protowire.AppendTag(b, f.num, protowire.BytesType)
			b = protowire.AppendString(b, v)
		case kindEnum:
			v := *f.enum(m)
			if v == 0 {
				continue
			}
			b = protowire.AppendTag(b, f.num, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(int64(v)))
		}
	}
	return b, nil
}

// unmarshal resets m and fills it from b. Unknown fields are skipped.
func (s *schema[M]) unmarshal(b []byte, m *M) error {
	var zero M
	*m = zero

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return &DecodeError{Message: s.message, Err: protowire.ParseError(n)}
		}
		b = b[n:]

		idx, known := s.byNum[num]
		if !known || s.fields[idx].kind.wireType() != typ {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return &DecodeError{Message: s.message, Field: fmt.Sprintf("#%d", num), Err: protowire.ParseError(n)}
			}
			b = b[n:]
			continue
		}

		f := s.fields[idx]
		switch f.kind {
		case kindString:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return &DecodeError{Message: s.message, Field: f.name, Err: protowire.ParseError(n)}
			}
			if !utf8.ValidString(v) {
				return &DecodeError{Message: s.message, Field: f.name, Err: errInvalidUTF8}
			}
			*f.str(m) = v
			b = b[n:]
		case kindEnum:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return &DecodeError{Message: s.message, Field: f.name, Err: protowire.ParseError(n)}
			}
			*f.enum(m) = int32(v)
			b = b[n:]
		}
	}
	return nil
}
