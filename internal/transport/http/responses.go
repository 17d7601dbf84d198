package httpapi

import (
	"time"

	"licensure/internal/domain"
)

// licenseItem is the wire shape of a stored record. Dates render as plain
// calendar dates; absent values are omitted rather than defaulted.
type licenseItem struct {
	FullName       string `json:"full_name"`
	State          string `json:"state"`
	LicenseNumber  string `json:"license_number"`
	Status         string `json:"status,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	SourceURI      string `json:"source_uri"`
	LastVerifiedAt string `json:"last_verified_at"`
}

func toItem(record domain.LicenseRecord) licenseItem {
	return licenseItem{
		FullName:       record.FullName,
		State:          record.State,
		LicenseNumber:  record.LicenseNumber,
		Status:         record.Status,
		IssueDate:      dateString(record.IssueDate),
		ExpiryDate:     dateString(record.ExpiryDate),
		SourceURI:      record.SourceURI,
		LastVerifiedAt: record.LastVerifiedAt.UTC().Format(time.RFC3339),
	}
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
