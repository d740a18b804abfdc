// Package identity derives stable record identities. An identity is the
// parent identity's raw bytes followed by the little-endian encoding of the
// target collection's length plus one, bounded to a fixed maximum. The same
// parent at the same collection length always derives the same bytes, so the
// caller must derive exactly once per insertion, before the length changes.
package identity

import (
	"encoding/binary"
	"fmt"

	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/gartstein/expocert/internal/expocert/models"
)

// Maximum identity lengths, in bytes. Each bound must cover the longest
// parent identity plus the 8-byte counter.
const (
	CompanyIDMaxLen = 16
	ApplyIDMaxLen   = 24
)

// counterLen is the size of the little-endian insertion counter.
const counterLen = 8

// DeriveCompanyID derives the id for a company about to be inserted into an
// owner's list of the given current length.
func DeriveCompanyID(owner models.CallerID, listLen int) (models.CompanyID, error) {
	id, err := derive(owner, listLen, CompanyIDMaxLen)
	if err != nil {
		return nil, fmt.Errorf("derive company id: %w", err)
	}
	return models.CompanyID(id), nil
}

// DeriveApplyID derives the id for an exhibition apply about to be inserted
// into a company's apply list of the given current length.
func DeriveApplyID(companyID models.CompanyID, listLen int) (models.ApplyID, error) {
	id, err := derive(companyID, listLen, ApplyIDMaxLen)
	if err != nil {
		return nil, fmt.Errorf("derive apply id: %w", err)
	}
	return models.ApplyID(id), nil
}

func derive(parent []byte, listLen int, maxLen int) ([]byte, error) {
	if len(parent)+counterLen > maxLen {
		return nil, fmt.Errorf("%w: parent %d bytes, bound %d", e.ErrIdentityTooLong, len(parent), maxLen)
	}
	id := make([]byte, 0, len(parent)+counterLen)
	id = append(id, parent...)
	id = binary.LittleEndian.AppendUint64(id, uint64(listLen)+1)
	return id, nil
}
