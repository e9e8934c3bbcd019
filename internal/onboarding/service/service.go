// Package service runs the onboarding Review page: draft persistence, the
// blocking-issue review, and the finalize saga that converges the staff
// record with the draft.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/lock"
	"carehub/internal/onboarding/metrics"
	"carehub/internal/onboarding/models"
	dErrors "carehub/pkg/domain-errors"
	audit "carehub/pkg/platform/audit"
	"carehub/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks StaffAPI,DraftStore,AuditPublisher

// StaffAPI is the backing staff service.
type StaffAPI interface {
	GetStaff(ctx context.Context, staffID string) (*models.StaffProfile, error)
	PatchStaff(ctx context.Context, staffID string, patch models.ProfilePatch) error
	AddDocument(ctx context.Context, staffID string, doc models.Document) (*models.Document, error)
	AddCredential(ctx context.Context, staffID string, cred models.Credential) (*models.Credential, error)
	AddAssignment(ctx context.Context, staffID string, a models.Assignment) (*models.Assignment, error)
	ProvisionUser(ctx context.Context, staffID string, req models.ProvisionUserRequest) (*models.LinkedUser, error)
	LinkUser(ctx context.Context, staffID string, req models.LinkUserRequest) error
	SearchUsers(ctx context.Context, query string) ([]models.UserAccount, error)
}

// DraftStore is the draft cache. Get returns sentinel.ErrNotFound for
// unknown ids.
type DraftStore interface {
	Get(ctx context.Context, draftID string) (draft.Document, error)
	Set(ctx context.Context, draftID string, doc draft.Document) error
	Delete(ctx context.Context, draftID string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	defaultLockTTL = 2 * time.Minute

	msgRestartWizard   = "Restart the onboarding wizard."
	msgFinalizeRetry   = "Could not finalize onboarding. Please retry."
	msgFinalizeRunning = "Onboarding for this record is already being finalized. Wait for it to finish and reload."
)

// Service orchestrates onboarding review and finalize.
type Service struct {
	staff          StaffAPI
	drafts         DraftStore
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	locker         lock.Locker
	lockTTL        time.Duration
	tracer         trace.Tracer
	newRunID       func() string
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithLocker serializes finalize runs per draft. Without one, concurrent
// runs of the same draft are not prevented.
func WithLocker(locker lock.Locker, ttl time.Duration) Option {
	return func(s *Service) {
		s.locker = locker
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithRunIDs overrides the finalize run id generator.
func WithRunIDs(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newRunID = gen
		}
	}
}

// New constructs a Service.
func New(staff StaffAPI, drafts DraftStore, opts ...Option) (*Service, error) {
	if staff == nil {
		return nil, errors.New("staff api is required")
	}
	if drafts == nil {
		return nil, errors.New("draft store is required")
	}
	s := &Service{
		staff:    staff,
		drafts:   drafts,
		logger:   slog.Default(),
		lockTTL:  defaultLockTTL,
		tracer:   otel.Tracer("carehub/onboarding"),
		newRunID: newRunID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetDraft returns the cached draft.
func (s *Service) GetDraft(ctx context.Context, draftID string) (draft.Document, error) {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return nil, err
	}
	doc, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, draftStoreError(err, "failed to load draft")
	}
	return doc, nil
}

// SaveDraft replaces the cached draft.
func (s *Service) SaveDraft(ctx context.Context, draftID string, doc draft.Document) error {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return err
	}
	if doc == nil {
		doc = draft.Document{}
	}
	if err := s.drafts.Set(ctx, draftID, doc); err != nil {
		return draftStoreError(err, "failed to save draft")
	}
	return nil
}

// MergeDraft replaces the given top-level sections, creating the draft
// when it does not exist yet. Wizard steps call this as each step is saved.
func (s *Service) MergeDraft(ctx context.Context, draftID string, sections map[string]any) (draft.Document, error) {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return nil, err
	}
	current, err := s.drafts.Get(ctx, draftID)
	if errors.Is(err, sentinel.ErrNotFound) {
		current = draft.Document{}
	} else if err != nil {
		return nil, draftStoreError(err, "failed to load draft")
	}
	merged := current.Merge(sections)
	if err := s.drafts.Set(ctx, draftID, merged); err != nil {
		return nil, draftStoreError(err, "failed to save draft")
	}
	return merged, nil
}

// DeleteDraft discards the cached draft. Deleting a missing draft succeeds.
func (s *Service) DeleteDraft(ctx context.Context, draftID string) error {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		return draftStoreError(err, "failed to delete draft")
	}
	return nil
}

func normalizeID(draftID string) (string, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "draft id is required")
	}
	return draftID, nil
}

func draftStoreError(err error, message string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "No onboarding draft was found for this record. "+msgRestartWizard)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "draft storage is unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, message)
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"log_type", "audit",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
	}
}
