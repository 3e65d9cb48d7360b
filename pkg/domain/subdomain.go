package domain

import (
	"regexp"
	"strings"

	dErrors "subguard/pkg/domain-errors"
)

// SubdomainName is a syntactically valid subdomain label. It is immutable once
// accepted into the registry; comparisons are case-insensitive via Key.
//
// Invariants:
//   - 3 to 63 characters
//   - lowercase letters, digits, and hyphens only
//   - starts and ends with an alphanumeric character
type SubdomainName string

const (
	// SubdomainMinLength and SubdomainMaxLength bound the accepted label size.
	// The upper bound matches the DNS label limit.
	SubdomainMinLength = 3
	SubdomainMaxLength = 63
)

// subdomainPattern is the RFC-style label shape: no leading or trailing hyphen.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ParseSubdomainName validates and returns a SubdomainName.
// This enforces only the syntactic invariants; semantic admission checks
// (denylists, homograph scan) live in the validation service.
func ParseSubdomainName(s string) (SubdomainName, error) {
	if len(s) < SubdomainMinLength || len(s) > SubdomainMaxLength {
		return "", dErrors.New(dErrors.CodeValidation, "subdomain must be between 3 and 63 characters")
	}
	if !subdomainPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeValidation, "subdomain must contain only lowercase letters, numbers, and hyphens")
	}
	return SubdomainName(s), nil
}

// String returns the name as entered.
func (n SubdomainName) String() string {
	return string(n)
}

// Key returns the canonical lowercase form used for uniqueness comparisons.
func (n SubdomainName) Key() string {
	return strings.ToLower(string(n))
}

// IsZero reports whether the name is empty.
func (n SubdomainName) IsZero() bool {
	return n == ""
}
