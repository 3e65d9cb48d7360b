package domain

import (
	"github.com/google/uuid"

	dErrors "subguard/pkg/domain-errors"
)

// ProjectID identifies the project a subdomain is provisioned for.
// Typed UUIDs keep distinct identifiers from being mixed up at compile time.
type ProjectID uuid.UUID

// ParseProjectID validates and returns a ProjectID.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseProjectID(s string) (ProjectID, error) {
	if s == "" {
		return ProjectID{}, dErrors.New(dErrors.CodeInvalidInput, "project id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, dErrors.New(dErrors.CodeInvalidInput, "project id must be a valid uuid")
	}
	if parsed == uuid.Nil {
		return ProjectID{}, dErrors.New(dErrors.CodeInvalidInput, "project id cannot be the nil uuid")
	}
	return ProjectID(parsed), nil
}

// NewProjectID generates a fresh project identifier.
func NewProjectID() ProjectID {
	return ProjectID(uuid.New())
}

// String returns the canonical UUID string form.
func (p ProjectID) String() string {
	return uuid.UUID(p).String()
}

// IsNil reports whether the ID is the zero value.
func (p ProjectID) IsNil() bool {
	return uuid.UUID(p) == uuid.Nil
}

// MarshalText renders the ID as its canonical UUID string.
func (p ProjectID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the canonical UUID string form.
func (p *ProjectID) UnmarshalText(text []byte) error {
	parsed, err := ParseProjectID(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ClientIdentity is the opaque identity a provisioning request arrives under,
// typically an IP address. It carries no uniqueness guarantee beyond equality
// and is used only as a rate-limit and audit key.
type ClientIdentity string

// String returns the raw identity value.
func (c ClientIdentity) String() string {
	return string(c)
}

// IsZero reports whether the identity is empty.
func (c ClientIdentity) IsZero() bool {
	return c == ""
}
