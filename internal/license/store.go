// Package license persists verified license records.
package license

import (
	"context"

	"licensure/internal/domain"
)

// Filter narrows a listing. Provider matches the stored full name as a
// case-insensitive substring; State matches exactly after uppercasing.
type Filter struct {
	Provider string
	State    string
}

// Store is the persistence boundary. Upsert keys on the natural key
// (state, license number): mutable fields are updated on an existing row,
// otherwise a new row is inserted, each call in its own atomic write so a
// crash mid-batch never loses already-written records.
//
// Uniqueness on the natural key is a practical expectation, not a database
// constraint — see domain.UnknownLicenseNumber for the shared-sentinel
// consequence.
type Store interface {
	Upsert(ctx context.Context, record domain.LicenseRecord) error
	List(ctx context.Context, filter Filter) ([]domain.LicenseRecord, error)
}
