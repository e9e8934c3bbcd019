// Package models holds the canonical staff records exchanged with the
// backing staff service.
package models

// CredentialType is the backend's credential enumeration.
type CredentialType string

const (
	CredentialMedicalReg  CredentialType = "MEDICAL_REG"
	CredentialNursingReg  CredentialType = "NURSING_REG"
	CredentialPharmacyReg CredentialType = "PHARMACY_REG"
	CredentialTechCert    CredentialType = "TECH_CERT"
	CredentialOther       CredentialType = "OTHER"
)

// VerificationStatus applies to credentials and documents.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "UNVERIFIED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationVerified   VerificationStatus = "VERIFIED"
	VerificationRejected   VerificationStatus = "REJECTED"
)

// AssignmentType is the backend's assignment enumeration.
type AssignmentType string

const (
	AssignmentPermanent  AssignmentType = "PERMANENT"
	AssignmentTemporary  AssignmentType = "TEMPORARY"
	AssignmentRotation   AssignmentType = "ROTATION"
	AssignmentVisiting   AssignmentType = "VISITING"
	AssignmentLocum      AssignmentType = "LOCUM"
	AssignmentContractor AssignmentType = "CONTRACTOR"
	AssignmentDeputation AssignmentType = "DEPUTATION"
	AssignmentTransfer   AssignmentType = "TRANSFER"
)

// AssignmentStatus is the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentPlanned   AssignmentStatus = "PLANNED"
	AssignmentSuspended AssignmentStatus = "SUSPENDED"
)

// OnboardingFinalized is the status written by the core profile patch.
const OnboardingFinalized = "FINALIZED"

// Credential is the canonical credential record. It is created at most once
// per dedup key and never updated by onboarding.
type Credential struct {
	ID                 string             `json:"id,omitempty"`
	Type               CredentialType     `json:"type" validate:"required,oneof=MEDICAL_REG NURSING_REG PHARMACY_REG TECH_CERT OTHER"`
	Title              string             `json:"title,omitempty"`
	Authority          string             `json:"authority,omitempty"`
	RegistrationNumber string             `json:"registrationNumber,omitempty"`
	ValidFrom          string             `json:"validFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidTo            string             `json:"validTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VerificationStatus VerificationStatus `json:"verificationStatus" validate:"required,oneof=UNVERIFIED PENDING VERIFIED REJECTED"`
	DocumentURL        string             `json:"documentUrl,omitempty"`
}

// IsPlaceholder reports an entry the wizard left empty: nothing identifies it.
func (c Credential) IsPlaceholder() bool {
	return c.RegistrationNumber == "" && c.DocumentURL == ""
}

// Assignment is the canonical assignment record.
type Assignment struct {
	ID             string           `json:"id,omitempty"`
	BranchID       string           `json:"branchId" validate:"required"`
	FacilityID     string           `json:"facilityId,omitempty"`
	DepartmentID   string           `json:"departmentId,omitempty"`
	UnitID         string           `json:"unitId,omitempty"`
	SpecialtyID    string           `json:"specialtyId,omitempty"`
	Designation    string           `json:"designation,omitempty"`
	BranchEmpCode  string           `json:"branchEmpCode,omitempty"`
	AssignmentType AssignmentType   `json:"assignmentType" validate:"required,oneof=PERMANENT TEMPORARY ROTATION VISITING LOCUM CONTRACTOR DEPUTATION TRANSFER"`
	EffectiveFrom  string           `json:"effectiveFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EffectiveTo    string           `json:"effectiveTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsPrimary      bool             `json:"isPrimary"`
	Status         AssignmentStatus `json:"status" validate:"required,oneof=ACTIVE PLANNED SUSPENDED"`
	Notes          string           `json:"notes,omitempty"`
}

// Document is a file pointer registered on the staff record.
type Document struct {
	ID                 string             `json:"id,omitempty"`
	Type               string             `json:"type"`
	FileURL            string             `json:"fileUrl"`
	IsRequired         bool               `json:"isRequired"`
	SetAsStaffPointer  bool               `json:"setAsStaffPointer,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
}

// LinkedUser is the login account attached to a staff record.
type LinkedUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// StaffProfile is the canonical staff record returned by GET /staff/{id}.
type StaffProfile struct {
	ID                string         `json:"id"`
	OnboardingStatus  string         `json:"onboardingStatus,omitempty"`
	PersonalDetails   map[string]any `json:"personalDetails,omitempty"`
	ContactDetails    map[string]any `json:"contactDetails,omitempty"`
	EmploymentDetails map[string]any `json:"employmentDetails,omitempty"`
	MedicalDetails    map[string]any `json:"medicalDetails,omitempty"`
	Documents         []Document     `json:"documents"`
	Credentials       []Credential   `json:"credentials"`
	Assignments       []Assignment   `json:"assignments"`
	User              *LinkedUser    `json:"user,omitempty"`
	UserID            string         `json:"userId,omitempty"`
}

// LinkedUserID returns the attached account id, or "" when none is linked.
func (p *StaffProfile) LinkedUserID() string {
	if p == nil {
		return ""
	}
	if p.User != nil && p.User.ID != "" {
		return p.User.ID
	}
	return p.UserID
}

// HasLinkedUser reports whether the staff record already has an account.
func (p *StaffProfile) HasLinkedUser() bool {
	return p.LinkedUserID() != ""
}

// UserAccount is one entry of the account search result.
type UserAccount struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ProfilePatch is the body of PATCH /staff/{id}.
type ProfilePatch struct {
	OnboardingStatus  string         `json:"onboardingStatus"`
	PersonalDetails   map[string]any `json:"personalDetails"`
	ContactDetails    map[string]any `json:"contactDetails"`
	EmploymentDetails map[string]any `json:"employmentDetails"`
	MedicalDetails    map[string]any `json:"medicalDetails"`
}

// ProvisionUserRequest is the body of POST /staff/{id}/provision-user.
type ProvisionUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	RoleCode string `json:"roleCode"`
}

// LinkUserRequest is the body of POST /staff/{id}/link-user.
type LinkUserRequest struct {
	UserID   string `json:"userId"`
	RoleCode string `json:"roleCode,omitempty"`
}
