package mapping

import (
	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/models"
)

// MapCredentialDraft assembles a canonical credential from a draft entry.
func MapCredentialDraft(raw draft.RawCredential) models.Credential {
	return models.Credential{
		Type:               MapCredentialType(raw.String("credential_type", "type", "credentialType")),
		Title:              raw.String("title", "name", "credential_title", "credential_name"),
		Authority:          raw.String("issuing_authority", "authority", "issuer", "council"),
		RegistrationNumber: raw.RegistrationNumber(),
		ValidFrom:          normalizeOrEmpty(raw.String("valid_from", "validFrom", "issue_date", "issued_on")),
		ValidTo:            normalizeOrEmpty(raw.String("valid_to", "validTo", "valid_until", "expiry_date", "expires_on")),
		VerificationStatus: MapVerificationStatus(raw.String("verification_status", "verificationStatus", "status")),
		DocumentURL:        raw.String("document_url", "documentUrl", "file_url", "fileUrl", "url"),
	}
}

// MapAssignmentDraft assembles a canonical assignment from a draft entry,
// using fallbackBranchID when the entry names no branch.
func MapAssignmentDraft(raw draft.RawAssignment, fallbackBranchID string) models.Assignment {
	branchID := raw.String("branch_id", "branchId", "branch")
	if branchID == "" {
		branchID = fallbackBranchID
	}
	return models.Assignment{
		BranchID:       branchID,
		FacilityID:     raw.String("facility_id", "facilityId", "facility"),
		DepartmentID:   raw.String("department_id", "departmentId", "department"),
		UnitID:         raw.String("unit_id", "unitId", "unit"),
		SpecialtyID:    raw.String("specialty_id", "specialtyId", "specialty"),
		Designation:    raw.String("designation", "designation_name"),
		BranchEmpCode:  raw.String("branch_emp_code", "branchEmpCode", "branch_employee_code"),
		AssignmentType: MapAssignmentType(raw.String("assignment_type", "assignmentType", "type")),
		EffectiveFrom:  normalizeOrEmpty(raw.String("effective_from", "effectiveFrom", "start_date", "from")),
		EffectiveTo:    normalizeOrEmpty(raw.String("effective_to", "effectiveTo", "end_date", "to")),
		IsPrimary:      raw.IsPrimary(),
		Status:         MapAssignmentStatus(raw.String("status", "assignment_status", "assignmentStatus")),
		Notes:          raw.String("notes", "remarks"),
	}
}
