// Package access decides and applies the one-time system-access action of a
// finalize run: nothing, provisioning a new account, or linking an existing one.
package access

import (
	"context"
	"strings"

	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/models"
	dErrors "carehub/pkg/domain-errors"
	"carehub/pkg/email"
	strutil "carehub/pkg/platform/strings"
)

// Mode is the access mode chosen in the wizard.
type Mode string

const (
	ModeNone         Mode = "NONE"
	ModeCreateNew    Mode = "CREATE_NEW"
	ModeLinkExisting Mode = "LINK_EXISTING"
)

var modes = map[string]Mode{
	"NONE":          ModeNone,
	"":              ModeNone,
	"NO_ACCESS":     ModeNone,
	"CREATE_NEW":    ModeCreateNew,
	"CREATE":        ModeCreateNew,
	"NEW":           ModeCreateNew,
	"PROVISION":     ModeCreateNew,
	"LINK_EXISTING": ModeLinkExisting,
	"LINK":          ModeLinkExisting,
	"EXISTING":      ModeLinkExisting,
}

// ParseMode maps a raw mode string onto a Mode. Unknown values are NONE.
func ParseMode(raw string) Mode {
	k := strings.ToUpper(strings.TrimSpace(raw))
	k = strings.NewReplacer("-", "_", " ", "_").Replace(k)
	if m, ok := modes[k]; ok {
		return m
	}
	return ModeNone
}

// Action is what a Plan does when applied.
type Action string

const (
	ActionNone      Action = "none"
	ActionProvision Action = "provision"
	ActionLink      Action = "link"
)

// Plan is the outcome of Decide.
type Plan struct {
	Action Action
	// Reason explains a no-op plan.
	Reason    string
	Provision models.ProvisionUserRequest
	// LinkUserID is set when the wizard named the account explicitly;
	// otherwise LinkEmail is resolved at apply time.
	LinkUserID string
	LinkEmail  string
	RoleCode   string
}

// Skip reasons.
const (
	ReasonDisabled      = "access_disabled"
	ReasonModeNone      = "mode_none"
	ReasonAlreadyLinked = "already_linked"
)

// Input gathers the draft values the decision reads.
type Input struct {
	Access       draft.SystemAccess
	ContactEmail string
	ContactPhone string
	FirstName    string
	LastName     string
}

// InputFromDraft extracts Input from a draft document.
func InputFromDraft(d draft.Document) Input {
	personal := d.Personal()
	return Input{
		Access:       d.SystemAccess(),
		ContactEmail: d.ContactEmail(),
		ContactPhone: d.ContactPhone(),
		FirstName:    personal.String("first_name", "firstName"),
		LastName:     personal.String("last_name", "lastName"),
	}
}

// Decide picks the access action. It performs no I/O. A profile that
// already has a linked account always yields ActionNone.
func Decide(in Input, profile *models.StaffProfile) (Plan, error) {
	if !in.Access.Enabled {
		return Plan{Action: ActionNone, Reason: ReasonDisabled}, nil
	}
	mode := ParseMode(in.Access.Mode)
	if mode == ModeNone {
		return Plan{Action: ActionNone, Reason: ReasonModeNone}, nil
	}
	if profile.HasLinkedUser() {
		return Plan{Action: ActionNone, Reason: ReasonAlreadyLinked}, nil
	}

	role := roleCode(in.Access)

	switch mode {
	case ModeCreateNew:
		addr := strutil.FirstNonEmpty(in.Access.Email, in.ContactEmail)
		if addr == "" {
			return Plan{}, dErrors.New(dErrors.CodePrecondition,
				"An email address is required to create a login account. Add one in System Access or Contact details.")
		}
		if role == "" {
			return Plan{}, dErrors.New(dErrors.CodePrecondition,
				"A role is required to create a login account. Choose a primary role in System Access.")
		}
		name := in.Access.Name
		if name == "" {
			name = email.DisplayName(addr, in.FirstName, in.LastName)
		}
		return Plan{
			Action: ActionProvision,
			Provision: models.ProvisionUserRequest{
				Email:    email.Normalize(addr),
				Name:     name,
				Phone:    strutil.FirstNonEmpty(in.Access.Phone, in.ContactPhone),
				RoleCode: role,
			},
			RoleCode: role,
		}, nil

	case ModeLinkExisting:
		if in.Access.UserID == "" && in.Access.Email == "" {
			return Plan{}, dErrors.New(dErrors.CodePrecondition,
				"Select an existing user or enter their email to link a login account.")
		}
		return Plan{
			Action:     ActionLink,
			LinkUserID: in.Access.UserID,
			LinkEmail:  in.Access.Email,
			RoleCode:   role,
		}, nil
	}

	return Plan{Action: ActionNone, Reason: ReasonModeNone}, nil
}

func roleCode(a draft.SystemAccess) string {
	return strutil.FirstNonEmpty(append([]string{a.PrimaryRoleCode}, a.RoleTemplateCodes...)...)
}

// Outcome reports what Apply did.
type Outcome struct {
	Action Action
	UserID string
	Reason string
}

// Accounts is the slice of the staff service the resolver calls.
type Accounts interface {
	ProvisionUser(ctx context.Context, staffID string, req models.ProvisionUserRequest) (*models.LinkedUser, error)
	LinkUser(ctx context.Context, staffID string, req models.LinkUserRequest) error
	SearchUsers(ctx context.Context, query string) ([]models.UserAccount, error)
}

// Resolver applies plans against the staff service.
type Resolver struct {
	accounts Accounts
}

// NewResolver constructs a Resolver.
func NewResolver(accounts Accounts) *Resolver {
	return &Resolver{accounts: accounts}
}

// Apply performs at most one provisioning or linking call.
func (r *Resolver) Apply(ctx context.Context, staffID string, plan Plan) (Outcome, error) {
	switch plan.Action {
	case ActionProvision:
		user, err := r.accounts.ProvisionUser(ctx, staffID, plan.Provision)
		if err != nil {
			return Outcome{}, err
		}
		out := Outcome{Action: ActionProvision}
		if user != nil {
			out.UserID = user.ID
		}
		return out, nil

	case ActionLink:
		userID := plan.LinkUserID
		if userID == "" {
			resolved, err := r.ResolveUserID(ctx, plan.LinkEmail)
			if err != nil {
				return Outcome{}, err
			}
			userID = resolved
		}
		req := models.LinkUserRequest{UserID: userID, RoleCode: plan.RoleCode}
		if err := r.accounts.LinkUser(ctx, staffID, req); err != nil {
			return Outcome{}, err
		}
		return Outcome{Action: ActionLink, UserID: userID}, nil
	}
	return Outcome{Action: ActionNone, Reason: plan.Reason}, nil
}

// ResolveUserID looks an account up by email. An exact case-insensitive
// match wins; otherwise the first search result is used.
func (r *Resolver) ResolveUserID(ctx context.Context, address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", dErrors.New(dErrors.CodePrecondition, "An email is required to find the user to link.")
	}
	users, err := r.accounts.SearchUsers(ctx, address)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.ID != "" && email.Equal(u.Email, address) {
			return u.ID, nil
		}
	}
	for _, u := range users {
		if u.ID != "" {
			return u.ID, nil
		}
	}
	return "", dErrors.New(dErrors.CodePrecondition, "No user account was found for "+address+".")
}
