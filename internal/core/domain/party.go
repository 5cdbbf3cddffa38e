package domain

import (
	"strings"
	"time"
)

// PartyKind distinguishes external people from internal employees.
type PartyKind string

// Party kinds.
const (
	PartyKindExternal PartyKind = "external"
	PartyKindEmployee PartyKind = "employee"
)

// IsValid returns true if the party kind is recognised.
func (k PartyKind) IsValid() bool {
	return k == PartyKindExternal || k == PartyKindEmployee
}

// PartyRole is the role a party plays in a process.
type PartyRole string

// Party roles.
const (
	PartyRoleAuthor    PartyRole = "author"
	PartyRoleDefendant PartyRole = "defendant"
	PartyRoleWitness   PartyRole = "witness"
	PartyRoleExpert    PartyRole = "expert"
	PartyRoleOther     PartyRole = "other"
)

// IsValid returns true if the party role is recognised.
func (r PartyRole) IsValid() bool {
	switch r {
	case PartyRoleAuthor, PartyRoleDefendant, PartyRoleWitness, PartyRoleExpert, PartyRoleOther:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r PartyRole) String() string {
	return string(r)
}

// Party is a person or entity that can be involved in processes.
// IdentificationNumber is unique across all parties.
type Party struct {
	ID                   string
	Name                 string
	IdentificationNumber string
	Kind                 PartyKind
	CreatedAt            time.Time
}

// ProcessParty joins a party to a process with a role.
// It is never updated in place; change a role by removing and re-adding.
type ProcessParty struct {
	ProcessID string
	Party     Party
	Role      PartyRole
	AddedAt   time.Time
	AddedBy   string
}

// AddPartyRequest carries the fields needed to attach a party.
type AddPartyRequest struct {
	ProcessID            string
	Name                 string
	IdentificationNumber string
	Kind                 PartyKind
	Role                 PartyRole
}

// Normalize trims whitespace and fills the default kind.
func (r AddPartyRequest) Normalize() AddPartyRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.IdentificationNumber = NormalizeIdentification(r.IdentificationNumber)
	if r.Kind == "" {
		r.Kind = PartyKindExternal
	}
	return r
}

// Validate checks required fields and enums.
func (r AddPartyRequest) Validate() error {
	switch {
	case r.ProcessID == "":
		return Errorf(ErrValidation, "process id is required")
	case r.Name == "":
		return Errorf(ErrValidation, "name is required")
	case r.IdentificationNumber == "":
		return Errorf(ErrValidation, "identification number is required")
	case !r.Kind.IsValid():
		return Errorf(ErrValidation, "unknown party kind %q", r.Kind)
	case !r.Role.IsValid():
		return Errorf(ErrValidation, "unknown party role %q", r.Role)
	}
	return nil
}

// NormalizeIdentification strips punctuation and spaces so that
// "123.456.789-00" and "12345678900" identify the same person.
func NormalizeIdentification(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '-', '/', ' ', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
