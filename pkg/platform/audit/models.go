package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers account and record-of-employment changes.
	CategoryCompliance EventCategory = "compliance"
	// CategoryOperations covers routine child-record creation.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	// Subject is the staff record the action applied to.
	Subject   string
	Action    string
	RunID     string
	RequestID string
	// ActorID is the operator driving the wizard, when known.
	ActorID string
	Detail  map[string]string
}

type AuditEvent string

const (
	EventDocumentAdded      AuditEvent = "onboarding_document_added"
	EventCredentialAdded    AuditEvent = "onboarding_credential_added"
	EventAssignmentAdded    AuditEvent = "onboarding_assignment_added"
	EventAccessProvisioned  AuditEvent = "onboarding_access_provisioned"
	EventAccessLinked       AuditEvent = "onboarding_access_linked"
	EventOnboardingFinalize AuditEvent = "onboarding_finalized"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAccessProvisioned:  CategoryCompliance,
	EventAccessLinked:       CategoryCompliance,
	EventOnboardingFinalize: CategoryCompliance,

	EventDocumentAdded:   CategoryOperations,
	EventCredentialAdded: CategoryOperations,
	EventAssignmentAdded: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
