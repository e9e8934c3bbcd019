// Package dedup derives stable keys from the significant fields of staff
// child records so a finalize run can tell which records already exist on
// the server. Keys are compared in memory and never persisted.
package dedup

import (
	"strings"

	"carehub/internal/onboarding/mapping"
	"carehub/internal/onboarding/models"
)

const sep = "|"

// CredentialKey joins type, registration number, authority, title and the
// validity window.
func CredentialKey(c models.Credential) string {
	return join(
		string(c.Type),
		c.RegistrationNumber,
		c.Authority,
		c.Title,
		date(c.ValidFrom),
		date(c.ValidTo),
	)
}

// AssignmentKey joins the placement fields, the assignment type and the
// effective window.
func AssignmentKey(a models.Assignment) string {
	return join(
		a.BranchID,
		a.FacilityID,
		a.DepartmentID,
		a.UnitID,
		a.SpecialtyID,
		a.Designation,
		string(a.AssignmentType),
		date(a.EffectiveFrom),
		date(a.EffectiveTo),
	)
}

// DocumentKey matches documents by exact type and URL.
func DocumentKey(docType, fileURL string) string {
	return docType + sep + fileURL
}

// date lets server timestamps and draft dates for the same day compare equal.
func date(s string) string {
	if d, ok := mapping.NormalizeDateLike(s); ok {
		return d
	}
	return strings.TrimSpace(s)
}

func join(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, sep)
}

// KeySet is an in-memory set of dedup keys for one finalize run.
type KeySet map[string]struct{}

// CredentialKeys seeds a set from existing server credentials.
func CredentialKeys(existing []models.Credential) KeySet {
	s := make(KeySet, len(existing))
	for _, c := range existing {
		s.Add(CredentialKey(c))
	}
	return s
}

// AssignmentKeys seeds a set from existing server assignments.
func AssignmentKeys(existing []models.Assignment) KeySet {
	s := make(KeySet, len(existing))
	for _, a := range existing {
		s.Add(AssignmentKey(a))
	}
	return s
}

// DocumentKeys seeds a set from existing server documents.
func DocumentKeys(existing []models.Document) KeySet {
	s := make(KeySet, len(existing))
	for _, d := range existing {
		s.Add(DocumentKey(d.Type, d.FileURL))
	}
	return s
}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}
