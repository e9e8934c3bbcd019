package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/models"
	"carehub/internal/onboarding/store/drafts"
	"carehub/internal/staffapi"
)

// fakeStaff is an in-memory staff service with per-method fault injection.
type fakeStaff struct {
	mu       sync.Mutex
	profiles map[string]*models.StaffProfile
	users    []models.UserAccount
	calls    map[string]int
	faults   map[string]*fault
	seq      int
}

type fault struct {
	skip int
	err  error
}

func newFakeStaff() *fakeStaff {
	return &fakeStaff{
		profiles: make(map[string]*models.StaffProfile),
		calls:    make(map[string]int),
		faults:   make(map[string]*fault),
	}
}

func (f *fakeStaff) addProfile(p *models.StaffProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
}

// failAfter lets skip calls of method succeed, then fails the next one once.
func (f *fakeStaff) failAfter(method string, skip int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[method] = &fault{skip: skip, err: err}
}

func (f *fakeStaff) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStaff) snapshot(id string) *models.StaffProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.profiles[id])
}

// enter records the call and returns the injected fault, if due. Callers
// hold f.mu.
func (f *fakeStaff) enter(method string) error {
	f.calls[method]++
	ft, ok := f.faults[method]
	if !ok {
		return nil
	}
	if ft.skip > 0 {
		ft.skip--
		return nil
	}
	delete(f.faults, method)
	return ft.err
}

func (f *fakeStaff) profile(method, id string) (*models.StaffProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, &staffapi.APIError{Status: http.StatusNotFound, Method: method, Path: "/staff/" + id, Message: "Staff not found"}
	}
	return p, nil
}

func (f *fakeStaff) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStaff) GetStaff(_ context.Context, id string) (*models.StaffProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetStaff"); err != nil {
		return nil, err
	}
	p, err := f.profile(http.MethodGet, id)
	if err != nil {
		return nil, err
	}
	return clone(p), nil
}

func (f *fakeStaff) PatchStaff(_ context.Context, id string, patch models.ProfilePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("PatchStaff"); err != nil {
		return err
	}
	p, err := f.profile(http.MethodPatch, id)
	if err != nil {
		return err
	}
	p.OnboardingStatus = patch.OnboardingStatus
	p.PersonalDetails = patch.PersonalDetails
	p.ContactDetails = patch.ContactDetails
	p.EmploymentDetails = patch.EmploymentDetails
	p.MedicalDetails = patch.MedicalDetails
	return nil
}

func (f *fakeStaff) AddDocument(_ context.Context, id string, doc models.Document) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddDocument"); err != nil {
		return nil, err
	}
	p, err := f.profile(http.MethodPost, id)
	if err != nil {
		return nil, err
	}
	doc.ID = f.nextID("doc")
	p.Documents = append(p.Documents, doc)
	return &doc, nil
}

func (f *fakeStaff) AddCredential(_ context.Context, id string, cred models.Credential) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddCredential"); err != nil {
		return nil, err
	}
	p, err := f.profile(http.MethodPost, id)
	if err != nil {
		return nil, err
	}
	cred.ID = f.nextID("cred")
	// the server echoes dates as timestamps
	if cred.ValidFrom != "" {
		cred.ValidFrom += "T00:00:00.000Z"
	}
	p.Credentials = append(p.Credentials, cred)
	return &cred, nil
}

func (f *fakeStaff) AddAssignment(_ context.Context, id string, a models.Assignment) (*models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("AddAssignment"); err != nil {
		return nil, err
	}
	p, err := f.profile(http.MethodPost, id)
	if err != nil {
		return nil, err
	}
	a.ID = f.nextID("asg")
	p.Assignments = append(p.Assignments, a)
	return &a, nil
}

func (f *fakeStaff) ProvisionUser(_ context.Context, id string, req models.ProvisionUserRequest) (*models.LinkedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ProvisionUser"); err != nil {
		return nil, err
	}
	p, err := f.profile(http.MethodPost, id)
	if err != nil {
		return nil, err
	}
	user := models.LinkedUser{ID: f.nextID("user"), Email: req.Email, Name: req.Name}
	f.users = append(f.users, models.UserAccount{ID: user.ID, Email: user.Email, Name: user.Name})
	p.User = &user
	return &user, nil
}

func (f *fakeStaff) LinkUser(_ context.Context, id string, req models.LinkUserRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("LinkUser"); err != nil {
		return err
	}
	p, err := f.profile(http.MethodPost, id)
	if err != nil {
		return err
	}
	p.UserID = req.UserID
	return nil
}

func (f *fakeStaff) SearchUsers(_ context.Context, query string) ([]models.UserAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SearchUsers"); err != nil {
		return nil, err
	}
	var out []models.UserAccount
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func clone(p *models.StaffProfile) *models.StaffProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Documents = append([]models.Document(nil), p.Documents...)
	c.Credentials = append([]models.Credential(nil), p.Credentials...)
	c.Assignments = append([]models.Assignment(nil), p.Assignments...)
	if p.User != nil {
		u := *p.User
		c.User = &u
	}
	return &c
}

// flakyDrafts fails the next Delete once when deleteErr is set.
type flakyDrafts struct {
	*drafts.InMemoryStore
	mu        sync.Mutex
	deleteErr error
}

func (d *flakyDrafts) Delete(ctx context.Context, draftID string) error {
	d.mu.Lock()
	err := d.deleteErr
	d.deleteErr = nil
	d.mu.Unlock()
	if err != nil {
		return err
	}
	return d.InMemoryStore.Delete(ctx, draftID)
}

func (d *flakyDrafts) failNextDelete(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleteErr = err
}

// clinicalDraft is a complete draft for a doctor: three credential entries
// of which two are identical, one placeholder, two assignments, two
// document pointers and a CREATE_NEW access request.
func clinicalDraft() draft.Document {
	return draft.Document{
		"employee_id": "EMP-042",
		"personal_details": map[string]any{
			"first_name":    "Asha",
			"last_name":     "Rao",
			"date_of_birth": "1990-04-12",
			"photo_url":     "https://cdn.example/photo.png",
			"signature_url": "https://cdn.example/sign.png",
		},
		"contact_details": map[string]any{
			"primary_mobile":  "+91 90000 00000",
			"official_email":  "Asha.Rao@Hospital.org",
			"current_address": map[string]any{"line1": "12 MG Road", "city": "Pune"},
		},
		"employment_details": map[string]any{
			"staff_category":  "DOCTOR",
			"department_id":   "DEP-1",
			"date_of_joining": "2024-01-05",
			"home_branch_id":  "B1",
		},
		"credentials": []any{
			map[string]any{"credential_type": "medical", "registration_number": "MC-123", "issuing_authority": "State Medical Council", "valid_from": "02/01/2020"},
			map[string]any{"credential_type": "MEDICAL_REG", "registration_number": "MC-123", "issuing_authority": "State Medical Council", "valid_from": "2020-02-01"},
			map[string]any{"credential_type": "other"},
			map[string]any{"credential_type": "TECH_CERT", "registration_number": "BLS-7", "title": "Basic Life Support"},
		},
		"assignments": []any{
			map[string]any{"branch_id": "B1", "is_primary": true, "designation": "Consultant", "status": "active"},
			map[string]any{"department_id": "DEP-2", "designation": "Visiting Consultant", "assignment_type": "visiting"},
		},
		"system_access": map[string]any{
			"enabled":           true,
			"mode":              "CREATE_NEW",
			"primary_role_code": "DOCTOR",
		},
	}
}
