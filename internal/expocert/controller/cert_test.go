package controller

import (
	"context"
	"testing"

	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/gartstein/expocert/internal/expocert/events"
	"github.com/gartstein/expocert/internal/expocert/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeCertRepo is an in-memory CertRepository for testing.
type fakeCertRepo struct {
	applies map[string]models.ExhibitionApply
	certs   map[string]models.PassCert
}

func newFakeCertRepo() *fakeCertRepo {
	return &fakeCertRepo{
		applies: make(map[string]models.ExhibitionApply),
		certs:   make(map[string]models.PassCert),
	}
}

func (f *fakeCertRepo) GetApply(_ context.Context, id models.ApplyID) (*models.ExhibitionApply, error) {
	apply, ok := f.applies[string(id)]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &apply, nil
}

func (f *fakeCertRepo) HasApply(_ context.Context, id models.ApplyID) (bool, error) {
	_, ok := f.applies[string(id)]
	return ok, nil
}

func (f *fakeCertRepo) PutApply(_ context.Context, apply *models.ExhibitionApply) error {
	f.applies[string(apply.ID)] = *apply
	return nil
}

func (f *fakeCertRepo) GetCert(_ context.Context, id models.CertID) (*models.PassCert, error) {
	cert, ok := f.certs[string(id)]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &cert, nil
}

func (f *fakeCertRepo) HasCert(_ context.Context, id models.CertID) (bool, error) {
	_, ok := f.certs[string(id)]
	return ok, nil
}

func (f *fakeCertRepo) PutCert(_ context.Context, cert *models.PassCert) error {
	f.certs[string(cert.ID)] = *cert
	return nil
}

func newDirectApply(id string) *models.ExhibitionApply {
	apply := newApply(models.CAEXPO)
	apply.ID = models.ApplyID(id)
	apply.CompanyID = models.CompanyID("company-1")
	return apply
}

func certSetup(t *testing.T) (*fakeCertRepo, *MockProducer, *CertService) {
	t.Helper()
	repo := newFakeCertRepo()
	producer := &MockProducer{}
	svc := NewCertService(repo, producer, Config{}, zaptest.NewLogger(t))
	return repo, producer, svc
}

func TestCertService_CreateApply(t *testing.T) {
	repo, producer, svc := certSetup(t)
	caller := models.CallerID("account1")

	apply := newDirectApply("apply-1")
	require.NoError(t, svc.CreateApply(context.Background(), caller, apply))

	stored, err := svc.Apply(context.Background(), apply.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Approved, stored.Status.Kind, "applies are stored auto-approved")
	assert.Equal(t, []events.EventType{events.ExhibitionApplied}, producer.types())

	// Same id again is a repeated apply.
	err = svc.CreateApply(context.Background(), caller, newDirectApply("apply-1"))
	assert.ErrorIs(t, err, e.ErrCompanyRepeatedApply)
	assert.Len(t, repo.applies, 1)
}

func TestCertService_CreateApply_MissingID(t *testing.T) {
	_, _, svc := certSetup(t)

	apply := newApply(models.CAEXPO)
	err := svc.CreateApply(context.Background(), models.CallerID("account1"), apply)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestCertService_CreateCert(t *testing.T) {
	tests := []struct {
		name        string
		seed        func(*fakeCertRepo)
		cert        models.PassCert
		expectedErr error
	}{
		{
			name: "apply never created",
			seed: func(_ *fakeCertRepo) {},
			cert: models.PassCert{
				ID:      models.CertID("cert-1"),
				ApplyID: models.ApplyID("ghost"),
			},
			expectedErr: e.ErrCompanyNotApply,
		},
		{
			name: "apply not approved",
			seed: func(f *fakeCertRepo) {
				apply := newDirectApply("apply-1")
				apply.Status = models.RejectedStatus("incomplete filing")
				f.applies[string(apply.ID)] = *apply
			},
			cert: models.PassCert{
				ID:      models.CertID("cert-1"),
				ApplyID: models.ApplyID("apply-1"),
			},
			expectedErr: e.ErrCompanyNotApproved,
		},
		{
			name: "certificate id taken",
			seed: func(f *fakeCertRepo) {
				apply := newDirectApply("apply-1")
				apply.Status = models.ApprovedStatus(3)
				f.applies[string(apply.ID)] = *apply
				f.certs["cert-1"] = models.PassCert{
					ID:      models.CertID("cert-1"),
					ApplyID: apply.ID,
					Status:  models.CertPending,
				}
			},
			cert: models.PassCert{
				ID:      models.CertID("cert-1"),
				ApplyID: models.ApplyID("apply-1"),
			},
			expectedErr: e.ErrCertRepeatedApply,
		},
		{
			name: "success",
			seed: func(f *fakeCertRepo) {
				apply := newDirectApply("apply-1")
				apply.Status = models.ApprovedStatus(3)
				f.applies[string(apply.ID)] = *apply
			},
			cert: models.PassCert{
				ID:      models.CertID("cert-1"),
				ApplyID: models.ApplyID("apply-1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, producer, svc := certSetup(t)
			tt.seed(repo)

			cert := tt.cert
			err := svc.CreateCert(context.Background(), models.CallerID("account1"), &cert)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.CertPending, cert.Status)
			assert.Equal(t, []events.EventType{events.CertApplied}, producer.types())
		})
	}
}

func TestCertService_LinearWorkflow(t *testing.T) {
	repo, producer, svc := certSetup(t)
	caller := models.CallerID("account1")
	ctx := context.Background()

	require.NoError(t, svc.CreateApply(ctx, caller, newDirectApply("apply-1")))

	cert := &models.PassCert{ID: models.CertID("cert-1"), ApplyID: models.ApplyID("apply-1")}
	require.NoError(t, svc.CreateCert(ctx, caller, cert))
	require.NoError(t, svc.Approve(ctx, caller, cert.ID))
	require.NoError(t, svc.MarkMade(ctx, caller, cert.ID))
	require.NoError(t, svc.MarkIssued(ctx, caller, cert.ID))

	stored, err := svc.Cert(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertIssued, stored.Status)

	// Re-approving after Issued must fail and leave the status unchanged.
	err = svc.Approve(ctx, caller, cert.ID)
	assert.ErrorIs(t, err, e.ErrCertApplyStatus)
	assert.Equal(t, models.CertIssued, repo.certs["cert-1"].Status)

	assert.Equal(t, []events.EventType{
		events.ExhibitionApplied,
		events.CertApplied,
		events.CertApproved,
		events.CertMade,
		events.CertIssued,
	}, producer.types())
}

func TestCertService_OutOfOrderTransitions(t *testing.T) {
	_, producer, svc := certSetup(t)
	caller := models.CallerID("account1")
	ctx := context.Background()

	require.NoError(t, svc.CreateApply(ctx, caller, newDirectApply("apply-1")))
	cert := &models.PassCert{ID: models.CertID("cert-1"), ApplyID: models.ApplyID("apply-1")}
	require.NoError(t, svc.CreateCert(ctx, caller, cert))

	// Made and Issued both require earlier stages.
	assert.ErrorIs(t, svc.MarkMade(ctx, caller, cert.ID), e.ErrCertApplyStatus)
	assert.ErrorIs(t, svc.MarkIssued(ctx, caller, cert.ID), e.ErrCertApplyStatus)

	stored, err := svc.Cert(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertPending, stored.Status, "failed transitions must not move the status")
	assert.Equal(t, []events.EventType{events.ExhibitionApplied, events.CertApplied}, producer.types(),
		"failed transitions must not emit events")
}

func TestCertService_Reject(t *testing.T) {
	_, producer, svc := certSetup(t)
	caller := models.CallerID("account1")
	ctx := context.Background()

	require.NoError(t, svc.CreateApply(ctx, caller, newDirectApply("apply-1")))
	cert := &models.PassCert{ID: models.CertID("cert-1"), ApplyID: models.ApplyID("apply-1")}
	require.NoError(t, svc.CreateCert(ctx, caller, cert))
	require.NoError(t, svc.Reject(ctx, caller, cert.ID))

	// Rejected is terminal.
	assert.ErrorIs(t, svc.Approve(ctx, caller, cert.ID), e.ErrCertApplyStatus)
	assert.ErrorIs(t, svc.MarkMade(ctx, caller, cert.ID), e.ErrCertApplyStatus)

	stored, err := svc.Cert(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CertRejected, stored.Status)
	assert.Equal(t, []events.EventType{
		events.ExhibitionApplied,
		events.CertApplied,
		events.CertRejected,
	}, producer.types())
}

func TestCertService_TransitionMissingCert(t *testing.T) {
	_, _, svc := certSetup(t)
	caller := models.CallerID("account1")

	err := svc.Approve(context.Background(), caller, models.CertID("ghost"))
	assert.ErrorIs(t, err, e.ErrCertApplyNonExistent)

	err = svc.MarkIssued(context.Background(), caller, models.CertID("ghost"))
	assert.ErrorIs(t, err, e.ErrCertApplyNonExistent)
}
