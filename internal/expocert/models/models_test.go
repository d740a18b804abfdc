package models

import (
	"strings"
	"testing"

	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/stretchr/testify/assert"
)

func TestCompanyEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Company
		equal bool
	}{
		{
			name:  "both ids assigned, ids match",
			a:     Company{ID: CompanyID("id-1"), Name: "Acme"},
			b:     Company{ID: CompanyID("id-1"), Name: "Other"},
			equal: true,
		},
		{
			name:  "both ids assigned, ids differ, same name",
			a:     Company{ID: CompanyID("id-1"), Name: "Acme"},
			b:     Company{ID: CompanyID("id-2"), Name: "Acme"},
			equal: false,
		},
		{
			name:  "one id missing falls back to name",
			a:     Company{ID: CompanyID("id-1"), Name: "Acme"},
			b:     Company{Name: "Acme"},
			equal: true,
		},
		{
			name:  "no ids, names differ",
			a:     Company{Name: "Acme"},
			b:     Company{Name: "Globex"},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(&tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(&tt.a), "equality must be symmetric")
		})
	}
}

func TestApplyEqual(t *testing.T) {
	companyID := CompanyID("company-1")

	tests := []struct {
		name  string
		a, b  ExhibitionApply
		equal bool
	}{
		{
			name:  "matching ids",
			a:     ExhibitionApply{ID: ApplyID("apply-1"), Exhibition: CAEXPO},
			b:     ExhibitionApply{ID: ApplyID("apply-1"), Exhibition: CIIE},
			equal: true,
		},
		{
			name:  "same company and exhibition",
			a:     ExhibitionApply{CompanyID: companyID, Exhibition: CAEXPO},
			b:     ExhibitionApply{ID: ApplyID("apply-1"), CompanyID: companyID, Exhibition: CAEXPO},
			equal: true,
		},
		{
			name:  "same company, different exhibition",
			a:     ExhibitionApply{CompanyID: companyID, Exhibition: CAEXPO},
			b:     ExhibitionApply{CompanyID: companyID, Exhibition: CantonFair},
			equal: false,
		},
		{
			name:  "unassigned ids alone never match",
			a:     ExhibitionApply{Exhibition: CAEXPO},
			b:     ExhibitionApply{Exhibition: CAEXPO},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(&tt.b))
		})
	}
}

func TestCompanyValidate(t *testing.T) {
	valid := Company{
		Name:    "Acme",
		Address: "Beijing",
		Contact: "Zhang San",
		Email:   "tom@abc.com",
		Mobile:  "13800000000",
	}
	assert.NoError(t, valid.Validate())

	tooLong := valid
	tooLong.Name = strings.Repeat("x", MaxNameLen+1)
	assert.ErrorIs(t, tooLong.Validate(), e.ErrInvalidInput)

	unnamed := valid
	unnamed.Name = ""
	assert.ErrorIs(t, unnamed.Validate(), e.ErrInvalidInput)
}

func TestApplyValidate(t *testing.T) {
	valid := ExhibitionApply{
		Exhibition: CAEXPO,
		Purpose:    Exhibit,
		Exhibits:   "exhibit 1",
		Booth:      BoothType{Kind: Standard, Value: 3},
	}
	assert.NoError(t, valid.Validate())

	badExhibition := valid
	badExhibition.Exhibition = "WORLD_FAIR"
	assert.ErrorIs(t, badExhibition.Validate(), e.ErrInvalidInput)

	badBooth := valid
	badBooth.Booth.Kind = "TENT"
	assert.ErrorIs(t, badBooth.Validate(), e.ErrInvalidInput)
}

func TestCalculateCertQuota(t *testing.T) {
	tests := []struct {
		name    string
		purpose ParticipationPurpose
		booth   BoothType
		want    CertQuota
	}{
		{
			name:    "purchase gets fixed visitor quota",
			purpose: Purchase,
			booth:   BoothType{Kind: Standard, Value: 5},
			want:    CertQuota{Visitor: VisitorCertsPerBooth},
		},
		{
			name:    "standard booths scale per unit",
			purpose: Exhibit,
			booth:   BoothType{Kind: Standard, Value: 3},
			want:    CertQuota{Visitor: 6, Exhibitor: 9},
		},
		{
			name:    "bare space splits area-based total",
			purpose: Exhibit,
			booth:   BoothType{Kind: BareSpace, Value: 50},
			want:    CertQuota{Visitor: 2, Exhibitor: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateCertQuota(tt.purpose, tt.booth))
		})
	}
}
