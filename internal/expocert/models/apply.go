package models

import (
	"bytes"
	"fmt"

	e "github.com/gartstein/expocert/internal/expocert/errors"
)

// ApplyID identifies a persisted exhibition apply. Nil means unassigned.
type ApplyID []byte

// Assigned reports whether an identity has been assigned.
func (id ApplyID) Assigned() bool {
	return len(id) > 0
}

// Equal reports whether both ids are assigned and byte-identical.
func (id ApplyID) Equal(other ApplyID) bool {
	return id.Assigned() && other.Assigned() && bytes.Equal(id, other)
}

// Exhibition is one of the fixed set of supported events.
type Exhibition string

const (
	// CAEXPO is the China-ASEAN Expo.
	CAEXPO Exhibition = "CAEXPO"
	// CantonFair is the China Import and Export Fair.
	CantonFair Exhibition = "CANTON_FAIR"
	// CIIE is the China International Import Expo.
	CIIE Exhibition = "CIIE"
)

// ParticipationPurpose is why a company attends an exhibition.
type ParticipationPurpose string

const (
	Exhibit  ParticipationPurpose = "EXHIBIT"
	Purchase ParticipationPurpose = "PURCHASE"
)

// BoothKind distinguishes the two booth offerings.
type BoothKind string

const (
	// Standard booths are rented by unit count.
	Standard BoothKind = "STANDARD"
	// BareSpace booths are rented by area in square meters.
	BareSpace BoothKind = "BARE_SPACE"
)

// BoothType is a booth request: a unit count for Standard booths, an area in
// square meters for BareSpace.
type BoothType struct {
	Kind  BoothKind
	Value uint32
}

// AuditKind is the outcome of an exhibition apply review.
type AuditKind string

const (
	UnAudited AuditKind = "UNAUDITED"
	Approved  AuditKind = "APPROVED"
	Rejected  AuditKind = "REJECTED"
)

// AuditStatus is a tagged audit outcome. CertQuota is meaningful only for
// Approved, Reason only for Rejected.
type AuditStatus struct {
	Kind      AuditKind
	CertQuota uint8
	Reason    string
}

// ApprovedStatus builds an Approved outcome carrying the number of
// certificates the company may apply for.
func ApprovedStatus(certQuota uint8) AuditStatus {
	return AuditStatus{Kind: Approved, CertQuota: certQuota}
}

// RejectedStatus builds a Rejected outcome carrying the reviewer's reason.
func RejectedStatus(reason string) AuditStatus {
	return AuditStatus{Kind: Rejected, Reason: reason}
}

// MaxExhibitsLen bounds the free-text exhibit description, in bytes.
const MaxExhibitsLen = 1024

// ExhibitionApply is a company's application to participate in one
// exhibition.
type ExhibitionApply struct {
	// ID is assigned on insertion.
	ID ApplyID
	// CompanyID references the owning company.
	CompanyID CompanyID
	// Exhibition is the event applied for.
	Exhibition Exhibition
	// Status is the audit outcome.
	Status AuditStatus
	// Purpose is the participation purpose.
	Purpose ParticipationPurpose
	// Exhibits describes the goods to be exhibited.
	Exhibits string
	// Booth is the requested booth type.
	Booth BoothType
}

// Equal is the apply dedup rule: equal ids, or the same company applying for
// the same exhibition. A company therefore cannot hold two applies for one
// exhibition regardless of the other fields.
func (a *ExhibitionApply) Equal(other *ExhibitionApply) bool {
	if a.ID.Equal(other.ID) {
		return true
	}
	return a.CompanyID.Equal(other.CompanyID) && a.Exhibition == other.Exhibition
}

// Validate checks enumeration membership and the exhibit text bound.
func (a *ExhibitionApply) Validate() error {
	switch a.Exhibition {
	case CAEXPO, CantonFair, CIIE:
	default:
		return errInvalidField("exhibition")
	}
	switch a.Purpose {
	case Exhibit, Purchase:
	default:
		return errInvalidField("participation_purpose")
	}
	switch a.Booth.Kind {
	case Standard, BareSpace:
	default:
		return errInvalidField("booth_type")
	}
	if len(a.Exhibits) > MaxExhibitsLen {
		return errInvalidField("exhibits")
	}
	return nil
}

func errInvalidField(name string) error {
	return fmt.Errorf("%w: invalid %s", e.ErrInvalidInput, name)
}
