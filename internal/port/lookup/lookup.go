// Package lookup defines the port for reference-data retrieval.
package lookup

import (
	"context"

	"github.com/google/uuid"

	"github.com/trbngr/refdata/internal/domain/gender"
)

// Lookup is the port interface for reading the gender code table.
//
// GetGender reports absence by returning an error wrapping domain.ErrNotFound;
// any other error is operational. Implementations must honor ctx cancellation
// and release their own resources before returning. The returned pointer is
// non-nil exactly when the error is nil.
type Lookup interface {
	GetGender(ctx context.Context, id uuid.UUID) (*gender.Gender, error)
	ListGenders(ctx context.Context) ([]gender.Gender, error)
}
