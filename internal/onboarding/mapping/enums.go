// Package mapping translates the wizard's loosely named fields and enum
// spellings into canonical staff records.
//
// Every mapper is total: unrecognized input falls back to a documented
// default instead of failing.
package mapping

import (
	"strings"

	"carehub/internal/onboarding/models"
)

// Defaults applied when an input is not in the synonym table.
const (
	DefaultCredentialType     = models.CredentialOther
	DefaultVerificationStatus = models.VerificationUnverified
	DefaultAssignmentType     = models.AssignmentPermanent
	DefaultAssignmentStatus   = models.AssignmentPlanned
)

var credentialTypes = map[string]models.CredentialType{
	"MEDICAL_REG":           models.CredentialMedicalReg,
	"MEDICAL":               models.CredentialMedicalReg,
	"MEDICAL_REGISTRATION":  models.CredentialMedicalReg,
	"MEDICAL_COUNCIL":       models.CredentialMedicalReg,
	"MCI":                   models.CredentialMedicalReg,
	"NMC":                   models.CredentialMedicalReg,
	"SMC":                   models.CredentialMedicalReg,
	"DOCTOR":                models.CredentialMedicalReg,
	"NURSING_REG":           models.CredentialNursingReg,
	"NURSING":               models.CredentialNursingReg,
	"NURSING_REGISTRATION":  models.CredentialNursingReg,
	"NURSING_COUNCIL":       models.CredentialNursingReg,
	"NURSE":                 models.CredentialNursingReg,
	"INC":                   models.CredentialNursingReg,
	"SNC":                   models.CredentialNursingReg,
	"PHARMACY_REG":          models.CredentialPharmacyReg,
	"PHARMACY":              models.CredentialPharmacyReg,
	"PHARMACY_REGISTRATION": models.CredentialPharmacyReg,
	"PHARMACY_COUNCIL":      models.CredentialPharmacyReg,
	"PHARMACIST":            models.CredentialPharmacyReg,
	"PCI":                   models.CredentialPharmacyReg,
	"TECH_CERT":             models.CredentialTechCert,
	"TECH":                  models.CredentialTechCert,
	"TECHNICAL":             models.CredentialTechCert,
	"TECHNICIAN":            models.CredentialTechCert,
	"CERTIFICATE":           models.CredentialTechCert,
	"CERTIFICATION":         models.CredentialTechCert,
	"OTHER":                 models.CredentialOther,
}

var verificationStatuses = map[string]models.VerificationStatus{
	"UNVERIFIED":   models.VerificationUnverified,
	"NOT_VERIFIED": models.VerificationUnverified,
	"NEW":          models.VerificationUnverified,
	"PENDING":      models.VerificationPending,
	"IN_PROGRESS":  models.VerificationPending,
	"IN_REVIEW":    models.VerificationPending,
	"SUBMITTED":    models.VerificationPending,
	"VERIFIED":     models.VerificationVerified,
	"APPROVED":     models.VerificationVerified,
	"VALID":        models.VerificationVerified,
	"CONFIRMED":    models.VerificationVerified,
	"REJECTED":     models.VerificationRejected,
	"DECLINED":     models.VerificationRejected,
	"INVALID":      models.VerificationRejected,
	"FAILED":       models.VerificationRejected,
}

var assignmentTypes = map[string]models.AssignmentType{
	"PERMANENT":           models.AssignmentPermanent,
	"EMPLOYEE":            models.AssignmentPermanent,
	"REGULAR":             models.AssignmentPermanent,
	"FULL_TIME":           models.AssignmentPermanent,
	"STAFF":               models.AssignmentPermanent,
	"TEMPORARY":           models.AssignmentTemporary,
	"TEMP":                models.AssignmentTemporary,
	"PART_TIME":           models.AssignmentTemporary,
	"ADHOC":               models.AssignmentTemporary,
	"AD_HOC":              models.AssignmentTemporary,
	"ROTATION":            models.AssignmentRotation,
	"ROTATIONAL":          models.AssignmentRotation,
	"VISITING":            models.AssignmentVisiting,
	"VISITOR":             models.AssignmentVisiting,
	"CONSULTANT":          models.AssignmentVisiting,
	"VISITING_CONSULTANT": models.AssignmentVisiting,
	"LOCUM":               models.AssignmentLocum,
	"LOCUM_TENENS":        models.AssignmentLocum,
	"CONTRACTOR":          models.AssignmentContractor,
	"CONTRACT":            models.AssignmentContractor,
	"CONTRACTUAL":         models.AssignmentContractor,
	"VENDOR":              models.AssignmentContractor,
	"DEPUTATION":          models.AssignmentDeputation,
	"DEPUTED":             models.AssignmentDeputation,
	"TRANSFER":            models.AssignmentTransfer,
	"TRANSFERRED":         models.AssignmentTransfer,
}

var assignmentStatuses = map[string]models.AssignmentStatus{
	"ACTIVE":    models.AssignmentActive,
	"CURRENT":   models.AssignmentActive,
	"ENABLED":   models.AssignmentActive,
	"PLANNED":   models.AssignmentPlanned,
	"UPCOMING":  models.AssignmentPlanned,
	"SCHEDULED": models.AssignmentPlanned,
	"PENDING":   models.AssignmentPlanned,
	"DRAFT":     models.AssignmentPlanned,
	"SUSPENDED": models.AssignmentSuspended,
	"INACTIVE":  models.AssignmentSuspended,
	"ON_HOLD":   models.AssignmentSuspended,
	"DISABLED":  models.AssignmentSuspended,
}

// enumKey folds case, surrounding space and the '-'/' ' separators so that
// "Full-time", "full time" and "FULL_TIME" hit the same table entry.
func enumKey(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func lookup[T ~string](table map[string]T, input string, fallback T) T {
	if v, ok := table[enumKey(input)]; ok {
		return v
	}
	return fallback
}

// MapCredentialType defaults to OTHER.
func MapCredentialType(input string) models.CredentialType {
	return lookup(credentialTypes, input, DefaultCredentialType)
}

// MapVerificationStatus defaults to UNVERIFIED.
func MapVerificationStatus(input string) models.VerificationStatus {
	return lookup(verificationStatuses, input, DefaultVerificationStatus)
}

// MapAssignmentType defaults to PERMANENT.
func MapAssignmentType(input string) models.AssignmentType {
	return lookup(assignmentTypes, input, DefaultAssignmentType)
}

// MapAssignmentStatus defaults to PLANNED.
func MapAssignmentStatus(input string) models.AssignmentStatus {
	return lookup(assignmentStatuses, input, DefaultAssignmentStatus)
}
