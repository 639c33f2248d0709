package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for runs and persisted records.
type Generator interface {
	NewID() (string, error)
}

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

// Static always returns the same ID; tests use it to pin run IDs.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
