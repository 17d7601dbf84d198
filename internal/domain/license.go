package domain

import "time"

// UnknownLicenseNumber is the sentinel stored when a matched licensee page
// yields no recoverable license number. It participates in the persistence
// natural key, so two different unmatched people in the same state share a
// row (last write wins). This mirrors the upstream lookup behavior and is a
// documented limitation, not an accident.
const UnknownLicenseNumber = "UNKNOWN"

// LicenseRecord is the single value that crosses from the verification
// pipeline into persistence. Status and both dates stay absent when the
// source page does not expose them; they are never guessed.
type LicenseRecord struct {
	FullName       string     `json:"full_name"`
	State          string     `json:"state"`
	LicenseNumber  string     `json:"license_number"`
	Status         string     `json:"status,omitempty"`
	IssueDate      *time.Time `json:"issue_date,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	SourceURI      string     `json:"source_uri"`
	LastVerifiedAt time.Time  `json:"last_verified_at"`
}

// NaturalKey identifies a record for upsert purposes.
func (r LicenseRecord) NaturalKey() string {
	return r.State + "/" + r.LicenseNumber
}
