package gender

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalRowsAreWellFormed(t *testing.T) {
	rows := Canonical()
	if len(rows) == 0 {
		t.Fatal("Canonical() returned no rows")
	}

	seen := make(map[uuid.UUID]string, len(rows))
	for _, g := range rows {
		if g.ID == uuid.Nil {
			t.Errorf("row %q uses the reserved sentinel id", g.Name)
		}
		if g.Name == "" {
			t.Errorf("row %s has an empty name", g.ID)
		}
		if prev, dup := seen[g.ID]; dup {
			t.Errorf("id %s assigned to both %q and %q", g.ID, prev, g.Name)
		}
		seen[g.ID] = g.Name
	}
}

func TestCanonicalReturnsFreshSlice(t *testing.T) {
	a := Canonical()
	a[0].Name = "mutated"
	if b := Canonical(); b[0].Name == "mutated" {
		t.Error("Canonical() shares backing storage between calls")
	}
}
