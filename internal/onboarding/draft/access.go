package draft

import strutil "carehub/pkg/platform/strings"

// SystemAccess is the wizard's access-provisioning section. Mode is left raw;
// the access package owns its interpretation.
type SystemAccess struct {
	Enabled           bool
	Mode              string
	Email             string
	UserID            string
	PrimaryRoleCode   string
	RoleTemplateCodes []string
	Phone             string
	Name              string
}

// SystemAccess reads the system_access section.
func (d Document) SystemAccess() SystemAccess {
	s := d.Section(SectionSystemAccess)
	return SystemAccess{
		Enabled:           s.Bool("enabled", "is_enabled"),
		Mode:              s.String("mode", "access_mode"),
		Email:             s.String("email", "login_email", "user_email"),
		UserID:            s.String("user_id", "existing_user_id", "userId"),
		PrimaryRoleCode:   s.String("primary_role_code", "primaryRoleCode", "role_code"),
		RoleTemplateCodes: strutil.DedupeAndTrimUpper(s.Strings("role_template_codes", "roleTemplateCodes", "role_templates", "roles")),
		Phone:             s.String("phone", "mobile"),
		Name:              s.String("name", "display_name"),
	}
}

// ContactEmail is the official email from the contact step.
func (d Document) ContactEmail() string {
	return d.Contact().String("official_email", "officialEmail", "email")
}

// ContactPhone is the primary mobile from the contact step.
func (d Document) ContactPhone() string {
	return d.Contact().String("primary_mobile", "primaryMobile", "mobile", "phone")
}
