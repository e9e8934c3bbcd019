// Package handler exposes the onboarding Review page over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/review"
	"carehub/internal/onboarding/service"
	dErrors "carehub/pkg/domain-errors"
	"carehub/pkg/platform/httputil"
	"carehub/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the onboarding operations the handler serves.
type Service interface {
	GetDraft(ctx context.Context, draftID string) (draft.Document, error)
	SaveDraft(ctx context.Context, draftID string, doc draft.Document) error
	MergeDraft(ctx context.Context, draftID string, sections map[string]any) (draft.Document, error)
	DeleteDraft(ctx context.Context, draftID string) error
	Review(ctx context.Context, draftID string) (*service.ReviewResult, error)
	Finalize(ctx context.Context, draftID string) (*service.Result, error)
}

// Handler handles onboarding endpoints.
type Handler struct {
	logger     *slog.Logger
	onboarding Service
}

// New creates a new onboarding Handler.
func New(onboarding Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, onboarding: onboarding}
}

// Register registers the onboarding routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/staff/onboarding/{draftID}", func(r chi.Router) {
		r.Get("/draft", h.handleGetDraft)
		r.Put("/draft", h.handleSaveDraft)
		r.Patch("/draft", h.handleMergeDraft)
		r.Delete("/draft", h.handleDeleteDraft)
		r.Get("/review", h.handleReview)
		r.Post("/finalize", h.handleFinalize)
	})
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	doc, err := h.onboarding.GetDraft(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, r, "failed to get draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		h.writeError(w, r, "invalid draft body", err)
		return
	}
	if err := h.onboarding.SaveDraft(r.Context(), chi.URLParam(r, "draftID"), body); err != nil {
		h.writeError(w, r, "failed to save draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMergeDraft(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		h.writeError(w, r, "invalid draft body", err)
		return
	}
	doc, err := h.onboarding.MergeDraft(r.Context(), chi.URLParam(r, "draftID"), body)
	if err != nil {
		h.writeError(w, r, "failed to merge draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.onboarding.DeleteDraft(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		h.writeError(w, r, "failed to delete draft", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	res, err := h.onboarding.Review(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		h.writeError(w, r, "failed to review draft", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	res, err := h.onboarding.Finalize(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		var blocked *review.BlockedError
		if errors.As(err, &blocked) {
			h.logger.InfoContext(r.Context(), "finalize blocked by review issues",
				"request_id", requestcontext.RequestID(r.Context()),
				"draft_id", chi.URLParam(r, "draftID"),
				"issues", len(blocked.Issues),
			)
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, blockedResponse{
				Error:            string(dErrors.CodeValidation),
				ErrorDescription: "Resolve the blocking issues before finalizing.",
				Issues:           blocked.Issues,
			})
			return
		}
		h.writeError(w, r, "failed to finalize onboarding", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

type blockedResponse struct {
	Error            string         `json:"error"`
	ErrorDescription string         `json:"error_description"`
	Issues           []review.Issue `json:"issues"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"draft_id", chi.URLParam(r, "draftID"),
		"error", err.Error(),
	}
	if step := service.FailedStep(err); step != "" {
		attrs = append(attrs, "step", step)
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

// decodeDocument reads a JSON object body. Callers that wrap the document
// in {"data": {...}} are accepted.
func decodeDocument(r *http.Request) (draft.Document, error) {
	var body map[string]any
	if err := httputil.DecodeJSON(r, &body); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body must be a JSON object")
	}
	if len(body) == 1 {
		if inner, ok := body["data"].(map[string]any); ok {
			return draft.Document(inner), nil
		}
	}
	return draft.Document(body), nil
}

