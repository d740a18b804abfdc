// Package errors declares the sentinel errors of the exhibition and
// certificate workflows. Every failure is detected during validation and
// reported before any write; callers match with errors.Is.
package errors

import (
	"fmt"
)

var (
	// ErrInvalidInput marks a submitted record that violates a field bound.
	ErrInvalidInput = fmt.Errorf("invalid input")
	// ErrNotFound is returned by repositories for a missing single record.
	ErrNotFound = fmt.Errorf("not found")

	// ErrCompanyLimitExceeded - the caller's company list is at capacity.
	ErrCompanyLimitExceeded = fmt.Errorf("company limit exceeded")
	// ErrApplyLimitExceeded - the company's exhibition apply list is at capacity.
	ErrApplyLimitExceeded = fmt.Errorf("exhibition apply limit exceeded")
	// ErrCompanyAlreadyApplied - the company already applied for this exhibition.
	ErrCompanyAlreadyApplied = fmt.Errorf("company already applied for this exhibition")

	// ErrCompanyRepeatedApply - an exhibition apply with this id already exists.
	ErrCompanyRepeatedApply = fmt.Errorf("exhibition apply already exists")
	// ErrCompanyNotApply - a certificate references an exhibition apply that
	// was never created.
	ErrCompanyNotApply = fmt.Errorf("exhibition apply does not exist")
	// ErrCompanyNotApproved - the referenced exhibition apply is not approved.
	ErrCompanyNotApproved = fmt.Errorf("exhibition apply not approved")
	// ErrCertRepeatedApply - a certificate with this id already exists.
	ErrCertRepeatedApply = fmt.Errorf("certificate already applied")
	// ErrCertApplyNonExistent - no certificate record with this id.
	ErrCertApplyNonExistent = fmt.Errorf("certificate apply does not exist")
	// ErrCertApplyStatus - the stored certificate status does not permit the
	// requested transition.
	ErrCertApplyStatus = fmt.Errorf("certificate status does not permit transition")

	// ErrIdentityTooLong - a derived identity would exceed its fixed bound.
	// This is a configuration fault: the bound must cover the longest caller
	// identity plus the 8-byte counter.
	ErrIdentityTooLong = fmt.Errorf("derived identity exceeds maximum length")
)
