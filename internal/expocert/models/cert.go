package models

import "bytes"

// CertID identifies a certificate apply record.
type CertID []byte

// Assigned reports whether an identity has been assigned.
func (id CertID) Assigned() bool {
	return len(id) > 0
}

// Equal reports whether both ids are assigned and byte-identical.
func (id CertID) Equal(other CertID) bool {
	return id.Assigned() && other.Assigned() && bytes.Equal(id, other)
}

// CertStatus is the lifecycle stage of a certificate apply. The machine is
// strictly linear: Pending -> Approved -> Made -> Issued, with Rejected
// terminal from Pending. No state is re-enterable.
type CertStatus string

const (
	CertPending  CertStatus = "PENDING"
	CertApproved CertStatus = "APPROVED"
	CertRejected CertStatus = "REJECTED"
	CertMade     CertStatus = "MADE"
	CertIssued   CertStatus = "ISSUED"
)

// PassCert is a request for physical access credentials, tied to an approved
// exhibition apply.
type PassCert struct {
	// ID identifies this certificate apply.
	ID CertID
	// ApplyID references the approved exhibition apply.
	ApplyID ApplyID
	// Status is the issuance stage.
	Status CertStatus
}

// Certificate quota parameters. A purchasing visitor gets a fixed number of
// visitor certs; an exhibitor's quota scales with booth units or area.
const (
	// VisitorCertsPerBooth is the visitor cert allowance per standard booth,
	// and the fixed allowance for purchase-purpose attendees.
	VisitorCertsPerBooth = 2
	// ExhibitorCertsPerBooth is the exhibitor cert allowance per standard booth.
	ExhibitorCertsPerBooth = 3
	// SquareMetersPerCert is the bare-space area that earns one certificate.
	SquareMetersPerCert = 10
)

// CertQuota is the visitor/exhibitor certificate allowance derived from a
// participation purpose and booth request.
type CertQuota struct {
	Visitor   uint32
	Exhibitor uint32
}

// CalculateCertQuota derives the certificate allowance for an apply.
// Purchase-purpose attendees get the fixed visitor allowance and no
// exhibitor certs. Standard booths earn per-booth allowances; bare space
// earns one certificate per SquareMetersPerCert, split evenly with the
// remainder going to exhibitor certs.
func CalculateCertQuota(purpose ParticipationPurpose, booth BoothType) CertQuota {
	if purpose == Purchase {
		return CertQuota{Visitor: VisitorCertsPerBooth}
	}
	switch booth.Kind {
	case Standard:
		return CertQuota{
			Visitor:   booth.Value * VisitorCertsPerBooth,
			Exhibitor: booth.Value * ExhibitorCertsPerBooth,
		}
	case BareSpace:
		total := (booth.Value + SquareMetersPerCert/2) / SquareMetersPerCert
		visitor := total / 2
		return CertQuota{Visitor: visitor, Exhibitor: total - visitor}
	}
	return CertQuota{}
}
