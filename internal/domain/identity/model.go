package identity

import "strings"

// EmailIdentity is a participant identity parsed from a "Name <address>" or
// bare-address string. It is an immutable value: a changed address means a new
// identity. Two identities are equal iff their address portions are equal.
type EmailIdentity struct {
	raw string
}

// FromRaw parses a raw identity string. Everything before the last space is the
// display name; the final token, stripped of angle brackets, is the address.
// A string with no space is treated as a bare address. Malformed input never
// fails: the whole string becomes the address and IsValid reports false.
func FromRaw(s string) EmailIdentity {
	return EmailIdentity{raw: strings.TrimSpace(s)}
}

// FromNameAndAddress builds an identity from separate name and address fields.
// PRE: none; empty or whitespace name degrades to FromRaw(address)
// POST: String() renders as "name <address>" when a name was given
func FromNameAndAddress(name, address string) EmailIdentity {
	if strings.TrimSpace(name) == "" {
		return FromRaw(address)
	}
	return FromRaw(strings.TrimSpace(name) + " <" + strings.TrimSpace(address) + ">")
}

// IsValidAddress reports whether address looks like an email address.
// The check is intentionally a loose syntactic approximation — it must contain
// "@" and "." — and is preserved as-is so historical entries keep validating.
func IsValidAddress(address string) bool {
	return strings.Contains(address, "@") && strings.Contains(address, ".")
}

// String returns the trimmed display form ("Name <address>" or bare address).
func (e EmailIdentity) String() string {
	return e.raw
}

// IsZero reports whether the identity is empty.
func (e EmailIdentity) IsZero() bool {
	return e.raw == ""
}

// HasExplicitName reports whether the source string carried a display name.
func (e EmailIdentity) HasExplicitName() bool {
	return strings.LastIndex(e.raw, " ") != -1
}

// Address returns the bare address portion.
func (e EmailIdentity) Address() string {
	if strings.LastIndex(e.raw, " ") == -1 {
		return e.raw
	}
	fields := strings.Fields(e.raw)
	return strings.Trim(fields[len(fields)-1], "<>")
}

// Name returns the first word of the display name, falling back to the
// local part of the address when no explicit name was given.
func (e EmailIdentity) Name() string {
	if strings.LastIndex(e.raw, " ") == -1 {
		return strings.Split(e.Address(), "@")[0]
	}
	return strings.Trim(strings.Fields(e.raw)[0], "<>")
}

// FullName returns the whole display-name portion, falling back to the
// local part of the address when no explicit name was given.
func (e EmailIdentity) FullName() string {
	idx := strings.LastIndex(e.raw, " ")
	if idx == -1 {
		return strings.Split(e.Address(), "@")[0]
	}
	return strings.TrimSpace(e.raw[:idx])
}

// IsValid reports whether the address portion passes IsValidAddress.
// INVARIANT: display-name content never affects validity
func (e EmailIdentity) IsValid() bool {
	return IsValidAddress(e.Address())
}

// Equals compares identities by address only, case-sensitive as given.
// INVARIANT: reflexive, symmetric, transitive
func (e EmailIdentity) Equals(other EmailIdentity) bool {
	return e.Address() == other.Address()
}

// MarshalText renders the identity as its raw display string.
func (e EmailIdentity) MarshalText() ([]byte, error) {
	return []byte(e.raw), nil
}

// UnmarshalText parses an identity from its raw display string.
func (e *EmailIdentity) UnmarshalText(text []byte) error {
	*e = FromRaw(string(text))
	return nil
}
