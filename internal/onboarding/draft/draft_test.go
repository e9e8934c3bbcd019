package draft

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) Document {
	t.Helper()
	doc, err := Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestFieldsString(t *testing.T) {
	f := Fields{
		"blank":  "   ",
		"name":   " Asha ",
		"number": float64(42),
		"json":   json.Number("7"),
		"flag":   true,
		"nested": map[string]any{"x": "y"},
	}

	assert.Equal(t, "Asha", f.String("missing", "blank", "name"))
	assert.Equal(t, "42", f.String("number"))
	assert.Equal(t, "7", f.String("json"))
	assert.Equal(t, "true", f.String("flag"))
	assert.Equal(t, "", f.String("nested"))
	assert.Equal(t, "", f.String())
}

func TestFieldsBool(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"yes string", "Yes", true},
		{"one number", float64(1), true},
		{"zero number", float64(0), false},
		{"garbage", "maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fields{"is_primary": tt.value}.Bool("is_primary"))
		})
	}
	assert.False(t, Fields{}.Bool("is_primary"))
}

func TestFieldsHas(t *testing.T) {
	f := Fields{
		"empty_obj":  map[string]any{"line1": " "},
		"filled_obj": map[string]any{"line1": "", "city": "Pune"},
		"text":       "x",
	}
	assert.False(t, f.Has("empty_obj"))
	assert.True(t, f.Has("filled_obj"))
	assert.True(t, f.Has("missing", "text"))
}

func TestCredentialsOverride(t *testing.T) {
	t.Run("medical section used when no top-level list", func(t *testing.T) {
		doc := mustParse(t, `{"medical_details":{"credentials":[{"credential_number":"MC-1"}]}}`)
		creds := doc.Credentials()
		require.Len(t, creds, 1)
		assert.Equal(t, "MC-1", creds[0].RegistrationNumber())
	})

	t.Run("top-level list overrides medical section", func(t *testing.T) {
		doc := mustParse(t, `{
			"credentials":[{"registration_number":"TOP-1"}],
			"medical_details":{"credentials":[{"credential_number":"MC-1"}]}
		}`)
		creds := doc.Credentials()
		require.Len(t, creds, 1)
		assert.Equal(t, "TOP-1", creds[0].RegistrationNumber())
	})

	t.Run("empty top-level list still overrides", func(t *testing.T) {
		doc := mustParse(t, `{"credentials":[],"medical_details":{"credentials":[{"credential_number":"MC-1"}]}}`)
		assert.Empty(t, doc.Credentials())
	})

	t.Run("non-object entries are ignored", func(t *testing.T) {
		doc := mustParse(t, `{"credentials":["oops",{"number":"N-1"}]}`)
		creds := doc.Credentials()
		require.Len(t, creds, 1)
		assert.Equal(t, "N-1", creds[0].RegistrationNumber())
	})
}

func TestEmployeeIDLookup(t *testing.T) {
	assert.Equal(t, "E1", mustParse(t, `{"personal_details":{"employee_id":"E1"},"employee_id":"TOP"}`).EmployeeID())
	assert.Equal(t, "E2", mustParse(t, `{"employment_details":{"employee_code":"E2"}}`).EmployeeID())
	assert.Equal(t, "TOP", mustParse(t, `{"employee_id":"TOP"}`).EmployeeID())
	assert.Equal(t, "", mustParse(t, `{}`).EmployeeID())
}

func TestDocuments(t *testing.T) {
	doc := mustParse(t, `{
		"personal_details":{"photo_url":"https://cdn/p.png"},
		"photo_biometric":{"signature_url":"https://cdn/s.png","photo_url":"https://cdn/ignored.png"}
	}`)

	refs := doc.Documents()
	assert.Equal(t, []DocumentRef{
		{Type: DocumentPhoto, URL: "https://cdn/p.png"},
		{Type: DocumentSignature, URL: "https://cdn/s.png"},
	}, refs)
	assert.Equal(t, "", doc.DocumentURL(DocumentStamp))
}

func TestSystemAccess(t *testing.T) {
	doc := mustParse(t, `{
		"contact_details":{"official_email":"a.b@h.org","primary_mobile":"99"},
		"system_access":{
			"enabled":true,
			"mode":"link_existing",
			"email":"x@h.org",
			"role_templates":[{"code":"NURSE"},"DOCTOR",{"name":"no code"}]
		}
	}`)

	access := doc.SystemAccess()
	assert.True(t, access.Enabled)
	assert.Equal(t, "link_existing", access.Mode)
	assert.Equal(t, "x@h.org", access.Email)
	assert.Equal(t, []string{"NURSE", "DOCTOR"}, access.RoleTemplateCodes)
	assert.Equal(t, "a.b@h.org", doc.ContactEmail())
	assert.Equal(t, "99", doc.ContactPhone())
}

func TestMergeDoesNotMutate(t *testing.T) {
	doc := Document{"personal_details": map[string]any{"first_name": "A"}}
	merged := doc.Merge(map[string]any{"contact_details": map[string]any{"mobile": "1"}})

	assert.Len(t, doc, 1)
	assert.Len(t, merged, 2)
	assert.Nil(t, doc.RawSection(SectionContact))
	assert.NotNil(t, merged.RawSection(SectionContact))
}

func TestParseRejectsNonObject(t *testing.T) {
	_, err := Parse([]byte(`[1,2]`))
	assert.Error(t, err)

	doc, err := Parse([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestSystemAccessRoleCodesAreNormalized(t *testing.T) {
	doc := mustParse(t, `{"system_access":{"roles":[" doctor","DOCTOR",{"code":"nurse"},""]}}`)
	assert.Equal(t, []string{"DOCTOR", "NURSE"}, doc.SystemAccess().RoleTemplateCodes)
}
