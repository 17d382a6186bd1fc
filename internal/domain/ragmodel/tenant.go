package ragmodel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidTenantID rejects a tenant identifier that is not a UUID.
var ErrInvalidTenantID = errors.New("invalid tenant id")

// ParseTenantID validates a raw tenant identifier and returns its canonical
// dashed lowercase form. Tenant ids are UUIDs; vector collection names are
// derived from them, so every entry point must call this before anything
// touches a store. Canonicalizing keeps the different spellings of one UUID
// on a single collection and makes the id→collection mapping injective.
func ParseTenantID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTenantID, raw)
	}
	return id.String(), nil
}
