// Package identifier decides whether a raw entity identifier is usable.
package identifier

import "github.com/google/uuid"

// Sentinel is the reserved empty identifier. It marks an absent or malformed
// id and is never a valid entity key.
var Sentinel = uuid.Nil

// Validate returns the identifier unchanged with ok=true, or ok=false when
// raw equals the reserved sentinel. The check is value equality only; a
// uuid.UUID carries no further well-formedness to verify. Validate is total:
// it has no side effects and cannot fail.
func Validate(raw uuid.UUID) (id uuid.UUID, ok bool) {
	if raw == Sentinel {
		return uuid.Nil, false
	}
	return raw, true
}
