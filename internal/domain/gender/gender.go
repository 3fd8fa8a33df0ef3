// Package gender defines the gender code table entity and its canonical rows.
package gender

import "github.com/google/uuid"

// Gender is one row of the gender code table. A value is immutable once
// constructed: the lookup source produces it and the pipeline hands it to the
// caller unchanged.
type Gender struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Fixed identifiers for the canonical rows, so every storage backend and
// environment agrees on the same keys.
var (
	FemaleID    = uuid.MustParse("9fa2f0a6-3b54-4a6b-9c68-2f81e1b0a24d")
	MaleID      = uuid.MustParse("c2ce00d4-8b0c-4f3b-a0a7-36b0f27f8d9b")
	NonBinaryID = uuid.MustParse("5d1cbb3f-92bd-4c0a-9a0e-7d7a28f0b7c3")
	UnknownID   = uuid.MustParse("0b9dbf9a-66d4-4a33-8b6c-5a0d5c2a9f41")
)

// Canonical returns the seed rows every backend starts with. Callers receive
// a fresh slice and may not rely on ordering beyond name stability.
func Canonical() []Gender {
	return []Gender{
		{ID: FemaleID, Name: "Female"},
		{ID: MaleID, Name: "Male"},
		{ID: NonBinaryID, Name: "Non-binary"},
		{ID: UnknownID, Name: "Unknown"},
	}
}
