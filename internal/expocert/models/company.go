// Package models defines the core domain records of the exhibition
// certificate workflows: Company, ExhibitionApply and PassCert, together
// with their identity types, enumerations and equality rules.
package models

import "bytes"

// CallerID is the authenticated identity of the account submitting an
// operation, as resolved by the auth layer.
type CallerID []byte

// CompanyID identifies a persisted company. A nil or empty value means the
// identity has not been assigned yet; ids are assigned exactly once, on the
// company's first successful insertion.
type CompanyID []byte

// Assigned reports whether an identity has been assigned.
func (id CompanyID) Assigned() bool {
	return len(id) > 0
}

// Equal reports whether both ids are assigned and byte-identical.
// Unassigned ids never compare equal, not even to each other.
func (id CompanyID) Equal(other CompanyID) bool {
	return id.Assigned() && other.Assigned() && bytes.Equal(id, other)
}

// Field length bounds for Company, in bytes.
const (
	MaxNameLen          = 240
	MaxAddressLen       = 240
	MaxContactLen       = 60
	MaxEmailLen         = 30
	MaxMobileLen        = 30
	MaxBusinessScopeLen = 1024
)

// Company is an exhibitor company registered by a caller.
type Company struct {
	// ID is assigned on first insertion and immutable afterwards.
	ID CompanyID
	// Name is the company's registered name.
	Name string
	// Address is the company's postal address.
	Address string
	// Contact is the name of the contact person.
	Contact string
	// Email is the contact person's email address.
	Email string
	// Mobile is the contact person's mobile number.
	Mobile string
	// BusinessScope describes the company's line of business.
	BusinessScope string
}

// Equal is the company dedup rule: when both sides carry an assigned id the
// ids decide, otherwise the comparison falls back to the name. The fallback
// is what lets a caller resubmit a company it has not seen the id of; see
// the registry for how the stored side wins on a name match.
func (c *Company) Equal(other *Company) bool {
	if c.ID.Assigned() && other.ID.Assigned() {
		return bytes.Equal(c.ID, other.ID)
	}
	return c.Name == other.Name
}

// Validate checks the field length bounds.
func (c *Company) Validate() error {
	switch {
	case c.Name == "" || len(c.Name) > MaxNameLen:
		return errInvalidField("name")
	case len(c.Address) > MaxAddressLen:
		return errInvalidField("address")
	case len(c.Contact) > MaxContactLen:
		return errInvalidField("contact")
	case len(c.Email) > MaxEmailLen:
		return errInvalidField("email")
	case len(c.Mobile) > MaxMobileLen:
		return errInvalidField("mobile")
	case len(c.BusinessScope) > MaxBusinessScopeLen:
		return errInvalidField("business_scope")
	}
	return nil
}
