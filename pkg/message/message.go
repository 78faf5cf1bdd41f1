// Package message is a minimal owning message for repeated fields. It
// allocates one native field per schema entry, issues the borrows that scope
// element accessors, and performs the length changes accessors are not
// allowed to make.
package message

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/rawbytedev/repeated"
)

var (
	ErrUnknownField  = errors.New("message: unknown field number")
	ErrInvalidSchema = errors.New("message: invalid schema")
)

// FieldDesc describes one repeated field.
type FieldDesc struct {
	Number int32         `toml:"number" yaml:"number"`
	Name   string        `toml:"name" yaml:"name"`
	Kind   repeated.Kind `toml:"kind" yaml:"kind"`
}

// Schema lists a message's repeated fields.
type Schema struct {
	Name   string      `toml:"name" yaml:"name"`
	Fields []FieldDesc `toml:"fields" yaml:"fields"`
}

// Options configures a Message.
type Options struct {
	// Logger receives debug events for borrow conflicts and length changes.
	// Nil disables logging.
	Logger *zerolog.Logger
}

type slot struct {
	desc FieldDesc
	raw  repeated.RawField
}

// Message owns the storage of its repeated fields.
type Message struct {
	name  string
	slots []slot // sorted by field number
	log   zerolog.Logger
}

// New allocates an empty message for schema.
func New(schema Schema, opts Options) (*Message, error) {
	m := &Message{name: schema.Name, log: zerolog.Nop()}
	if opts.Logger != nil {
		m.log = opts.Logger.With().Str("message", schema.Name).Logger()
	}
	for _, fd := range schema.Fields {
		if fd.Number <= 0 {
			return nil, fmt.Errorf("%w: field %q has number %d", ErrInvalidSchema, fd.Name, fd.Number)
		}
		raw, err := repeated.NewRawField(fd.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrInvalidSchema, fd.Name, err)
		}
		m.slots = append(m.slots, slot{desc: fd, raw: raw})
	}
	slices.SortFunc(m.slots, func(a, b slot) int { return cmp.Compare(a.desc.Number, b.desc.Number) })
	for i := 1; i < len(m.slots); i++ {
		if m.slots[i].desc.Number == m.slots[i-1].desc.Number {
			return nil, fmt.Errorf("%w: duplicate field number %d", ErrInvalidSchema, m.slots[i].desc.Number)
		}
	}
	return m, nil
}

// Name returns the schema name.
func (m *Message) Name() string { return m.name }

// Fields returns the field descriptors in number order.
func (m *Message) Fields() []FieldDesc {
	out := make([]FieldDesc, len(m.slots))
	for i, s := range m.slots {
		out[i] = s.desc
	}
	return out
}

func (m *Message) lookup(num int32) (*slot, error) {
	i, ok := slices.BinarySearchFunc(m.slots, num, func(s slot, n int32) int { return cmp.Compare(s.desc.Number, n) })
	if !ok {
		return nil, fmt.Errorf("%w: %s.%d", ErrUnknownField, m.name, num)
	}
	return &m.slots[i], nil
}

// Raw returns the storage handle of field num.
func (m *Message) Raw(num int32) (repeated.RawField, error) {
	s, err := m.lookup(num)
	if err != nil {
		return repeated.RawField{}, err
	}
	return s.raw, nil
}

// Len returns the length of field num. It takes a transient shared borrow,
// so it fails with repeated.ErrBorrowConflict while the field is borrowed
// exclusively.
func (m *Message) Len(num int32) (int, error) {
	b, err := m.Shared(num)
	if err != nil {
		return 0, err
	}
	defer b.Release()
	return b.Ref().Raw().Len(), nil
}

// Shared starts a shared borrow of field num.
func (m *Message) Shared(num int32) (*repeated.Shared, error) {
	s, err := m.lookup(num)
	if err != nil {
		return nil, err
	}
	b, err := repeated.BorrowShared(s.raw)
	if err != nil {
		m.log.Debug().Str("field", s.desc.Name).Int32("number", num).Str("borrow", "shared").Err(err).Msg("borrow refused")
		return nil, fmt.Errorf("%s.%s: %w", m.name, s.desc.Name, err)
	}
	return b, nil
}

// Exclusive starts an exclusive borrow of field num.
func (m *Message) Exclusive(num int32) (*repeated.Exclusive, error) {
	s, err := m.lookup(num)
	if err != nil {
		return nil, err
	}
	b, err := repeated.BorrowExclusive(s.raw)
	if err != nil {
		m.log.Debug().Str("field", s.desc.Name).Int32("number", num).Str("borrow", "exclusive").Err(err).Msg("borrow refused")
		return nil, fmt.Errorf("%s.%s: %w", m.name, s.desc.Name, err)
	}
	return b, nil
}

// Append adds vs to field num under a transient exclusive borrow.
func Append[T repeated.Scalar](m *Message, num int32, vs ...T) error {
	return m.resize(num, "append", func(raw repeated.RawField) error {
		return repeated.Append(raw, vs...)
	})
}

// Truncate shortens field num to n elements.
func (m *Message) Truncate(num int32, n int) error {
	return m.resize(num, "truncate", func(raw repeated.RawField) error {
		return repeated.Truncate(raw, n)
	})
}

// Clear drops every element of field num.
func (m *Message) Clear(num int32) error {
	return m.resize(num, "clear", func(raw repeated.RawField) error {
		repeated.Clear(raw)
		return nil
	})
}

func (m *Message) resize(num int32, op string, fn func(repeated.RawField) error) error {
	s, err := m.lookup(num)
	if err != nil {
		return err
	}
	e, err := m.Exclusive(num)
	if err != nil {
		return err
	}
	defer e.Release()

	raw := e.Ref().Raw()
	before := raw.Len()
	if err := fn(raw); err != nil {
		return fmt.Errorf("%s %s.%s: %w", op, m.name, s.desc.Name, err)
	}
	m.log.Debug().Str("field", s.desc.Name).Int32("number", num).Str("op", op).
		Int("from", before).Int("to", raw.Len()).Msg("resized")
	return nil
}
