package utils

import "github.com/google/uuid"

// UUIDGenerator produces the identifiers used for token jti claims and
// request trace IDs. Version 7 UUIDs are time ordered, which keeps the
// denylist keys and audit correlation roughly chronological.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 UUID string, falling back to a random v4 when
// the monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
