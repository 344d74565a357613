package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for new rows.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (version 4) UUIDs in their canonical text form.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// Sequence issues predictable IDs with a fixed prefix. It is meant for tests and seed data.
type Sequence struct {
	prefix string
	next   func() int
}

func NewSequence(prefix string) *Sequence {
	n := 0
	return &Sequence{
		prefix: prefix,
		next: func() int {
			n++
			return n
		},
	}
}

func (s *Sequence) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", s.prefix, s.next()), nil
}
