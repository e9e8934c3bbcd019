package review

import (
	"strings"

	"carehub/internal/onboarding/draft"
)

// clinicalCategories must carry at least one registered credential.
var clinicalCategories = map[string]struct{}{
	"DOCTOR":          {},
	"CONSULTANT":      {},
	"RESIDENT":        {},
	"SURGEON":         {},
	"DENTIST":         {},
	"NURSE":           {},
	"MIDWIFE":         {},
	"PHARMACIST":      {},
	"LAB_TECHNICIAN":  {},
	"RADIOGRAPHER":    {},
	"PHYSIOTHERAPIST": {},
}

// IsClinical reports whether a staff category needs a registration.
func IsClinical(category string) bool {
	key := strings.ToUpper(strings.TrimSpace(category))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	_, ok := clinicalCategories[key]
	return ok
}

type rule func(d draft.Document) []Issue

// rules run in declaration order; the issue list keeps that order.
var rules = []rule{
	required("employee_id", StepStart, "Employee ID is required", func(d draft.Document) bool {
		return d.EmployeeID() != ""
	}),
	required("first_name", StepPersonal, "First name is required", func(d draft.Document) bool {
		return d.Personal().Has("first_name", "firstName")
	}),
	required("last_name", StepPersonal, "Last name is required", func(d draft.Document) bool {
		return d.Personal().Has("last_name", "lastName")
	}),
	required("date_of_birth", StepPersonal, "Date of birth is required", func(d draft.Document) bool {
		return d.Personal().Has("date_of_birth", "dob", "dateOfBirth")
	}),
	required("primary_mobile", StepContact, "Primary mobile number is required", func(d draft.Document) bool {
		return d.ContactPhone() != ""
	}),
	required("official_email", StepContact, "Official email is required", func(d draft.Document) bool {
		return d.ContactEmail() != ""
	}),
	required("current_address", StepAddress, "Current address is required", func(d draft.Document) bool {
		return d.Contact().Has("current_address", "currentAddress", "address")
	}),
	required("staff_category", StepEmployment, "Staff category is required", func(d draft.Document) bool {
		return d.StaffCategory() != ""
	}),
	required("department", StepEmployment, "Department is required", func(d draft.Document) bool {
		return d.Employment().Has("department_id", "departmentId", "department")
	}),
	required("date_of_joining", StepEmployment, "Date of joining is required", func(d draft.Document) bool {
		return d.Employment().Has("date_of_joining", "dateOfJoining", "joining_date")
	}),
	assignmentsRule,
	clinicalCredentialRule,
	recommended("photo", StepPhotoBiometric, "No photo uploaded", func(d draft.Document) bool {
		return d.DocumentURL(draft.DocumentPhoto) != ""
	}),
	recommended("signature", StepPhotoBiometric, "No signature uploaded", func(d draft.Document) bool {
		return d.DocumentURL(draft.DocumentSignature) != ""
	}),
}

// Validate evaluates every rule against the draft.
func Validate(d draft.Document) []Issue {
	issues := make([]Issue, 0, len(rules))
	for _, r := range rules {
		issues = append(issues, r(d)...)
	}
	return issues
}

func required(key, step, message string, present func(draft.Document) bool) rule {
	return check(key, step, message, SeverityError, present)
}

func recommended(key, step, message string, present func(draft.Document) bool) rule {
	return check(key, step, message, SeverityWarn, present)
}

func check(key, step, message string, severity Severity, present func(draft.Document) bool) rule {
	return func(d draft.Document) []Issue {
		if present(d) {
			return nil
		}
		return []Issue{{Key: key, Severity: severity, Message: message, StepKey: step}}
	}
}

func assignmentsRule(d draft.Document) []Issue {
	assignments := d.Assignments()
	if len(assignments) == 0 {
		return []Issue{{
			Key:      "assignments",
			Severity: SeverityWarn,
			Message:  "No assignments added; the staff member will not be placed at any branch",
			StepKey:  StepAssignments,
		}}
	}
	for _, a := range assignments {
		if a.IsPrimary() {
			return nil
		}
	}
	return []Issue{{
		Key:      "assignments_primary",
		Severity: SeverityWarn,
		Message:  "No assignment is marked as primary",
		StepKey:  StepAssignments,
	}}
}

func clinicalCredentialRule(d draft.Document) []Issue {
	if !IsClinical(d.StaffCategory()) {
		return nil
	}
	for _, c := range d.Credentials() {
		if c.RegistrationNumber() != "" {
			return nil
		}
	}
	return []Issue{{
		Key:      "credentials",
		Severity: SeverityError,
		Message:  "Clinical staff need at least one credential with a registration number",
		StepKey:  StepCredentials,
	}}
}
