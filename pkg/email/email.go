// Package email holds the small address helpers used when provisioning accounts.
package email

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims and lowercases an address for comparison.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Equal compares two addresses case-insensitively, ignoring surrounding space.
func Equal(a, b string) bool {
	return Normalize(a) != "" && Normalize(a) == Normalize(b)
}

// IsPlausible is a cheap shape check: one '@' with a non-empty local part and a
// dotted domain. It is not an RFC 5322 validator.
func IsPlausible(address string) bool {
	address = strings.TrimSpace(address)
	at := strings.IndexByte(address, '@')
	if at <= 0 || at != strings.LastIndexByte(address, '@') {
		return false
	}
	domain := address[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// DeriveNameFromEmail splits the local part on '.', '_', '-' and '+' and
// title-cases the first and last token. "jane.doe@x" yields ("Jane", "Doe").
func DeriveNameFromEmail(address string) (string, string) {
	localPart := strings.TrimSpace(address)
	if at := strings.IndexByte(localPart, '@'); at > 0 {
		localPart = localPart[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "User", "User"
	}

	// Casers carry state and are not safe for concurrent use.
	caser := cases.Title(language.Und)
	first := caser.String(parts[0])
	last := "User"
	if len(parts) > 1 {
		last = caser.String(parts[len(parts)-1])
	}

	return first, last
}

// DisplayName joins the non-empty name parts; when none are given the name is
// derived from the address.
func DisplayName(address string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) > 0 {
		return strings.Join(kept, " ")
	}
	if strings.TrimSpace(address) == "" {
		return ""
	}
	first, last := DeriveNameFromEmail(address)
	return first + " " + last
}
