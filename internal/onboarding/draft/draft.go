// Package draft models the onboarding wizard's locally cached document.
//
// The wizard accumulates one untyped JSON document per onboarding attempt.
// This package is the only place that knows the loose section and field
// names; downstream code receives RawCredential, RawAssignment, SystemAccess
// and DocumentRef values and never re-parses the document.
package draft

import (
	"encoding/json"
	"fmt"
)

// Recognized top-level sections.
const (
	SectionPersonal       = "personal_details"
	SectionContact        = "contact_details"
	SectionEmployment     = "employment_details"
	SectionMedical        = "medical_details"
	SectionCredentials    = "credentials"
	SectionAssignments    = "assignments"
	SectionSystemAccess   = "system_access"
	SectionPhotoBiometric = "photo_biometric"
)

// Document is the wizard's accumulated state for one onboarding attempt.
type Document map[string]any

// Parse decodes a JSON object into a Document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Section returns the named object section, or an empty Fields.
func (d Document) Section(name string) Fields {
	return Fields(d).Object(name)
}

func (d Document) Personal() Fields   { return d.Section(SectionPersonal) }
func (d Document) Contact() Fields    { return d.Section(SectionContact) }
func (d Document) Employment() Fields { return d.Section(SectionEmployment) }
func (d Document) Medical() Fields    { return d.Section(SectionMedical) }

// RawSection returns the section as it should be sent to the backend: the
// object itself, or nil when the wizard never wrote it.
func (d Document) RawSection(name string) map[string]any {
	if m, ok := d[name].(map[string]any); ok {
		return m
	}
	return nil
}

// EmployeeID looks in the personal section first, then employment, then the
// top level where the start step writes it.
func (d Document) EmployeeID() string {
	if id := d.Personal().String("employee_id", "employee_code", "employeeId"); id != "" {
		return id
	}
	if id := d.Employment().String("employee_id", "employee_code", "employeeId"); id != "" {
		return id
	}
	return Fields(d).String("employee_id", "employee_code", "employeeId")
}

// StaffCategory returns the employment section's staff category.
func (d Document) StaffCategory() string {
	return d.Employment().String("staff_category", "staffCategory", "category")
}

// HomeBranchID is the branch an assignment falls back to when it omits one.
func (d Document) HomeBranchID() string {
	return d.Employment().String("home_branch_id", "branch_id", "homeBranchId", "primary_branch_id")
}

// Credentials returns the draft credential entries. A top-level credentials
// list overrides the one nested in the medical section, even when empty.
func (d Document) Credentials() []RawCredential {
	list, ok := Fields(d).List(SectionCredentials)
	if !ok {
		list, _ = d.Medical().List(SectionCredentials)
	}
	out := make([]RawCredential, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, RawCredential{Fields: m})
		}
	}
	return out
}

// Assignments returns the draft assignment entries.
func (d Document) Assignments() []RawAssignment {
	list, _ := Fields(d).List(SectionAssignments)
	out := make([]RawAssignment, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, RawAssignment{Fields: m})
		}
	}
	return out
}

// Merge returns a copy of d with the given top-level sections replaced.
func (d Document) Merge(sections map[string]any) Document {
	out := make(Document, len(d)+len(sections))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range sections {
		out[k] = v
	}
	return out
}

// RawCredential is one credential entry as the wizard wrote it.
type RawCredential struct {
	Fields
}

// RegistrationNumber reads every name the wizard has used for it.
func (c RawCredential) RegistrationNumber() string {
	return c.String("registration_number", "credential_number", "registrationNumber", "license_number", "licence_number", "number")
}

// RawAssignment is one assignment entry as the wizard wrote it.
type RawAssignment struct {
	Fields
}

// IsPrimary reports the entry's primary flag.
func (a RawAssignment) IsPrimary() bool {
	return a.Bool("is_primary", "isPrimary", "primary")
}
