package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/gartstein/expocert/internal/expocert/events"
	"github.com/gartstein/expocert/internal/expocert/models"
	"go.uber.org/zap"
)

// CertRepository is the storage interface for the certificate workflow: one
// key space of exhibition applies and one of certificate applies, each keyed
// by record id. Gets of absent keys return errors.ErrNotFound.
type CertRepository interface {
	GetApply(ctx context.Context, id models.ApplyID) (*models.ExhibitionApply, error)
	HasApply(ctx context.Context, id models.ApplyID) (bool, error)
	PutApply(ctx context.Context, apply *models.ExhibitionApply) error
	GetCert(ctx context.Context, id models.CertID) (*models.PassCert, error)
	HasCert(ctx context.Context, id models.CertID) (bool, error)
	PutCert(ctx context.Context, cert *models.PassCert) error
}

// CertService runs the certificate workflow: directly keyed exhibition
// applies and the linear issuance machine
// Pending -> Approved -> Made -> Issued, with Rejected terminal from Pending.
type CertService struct {
	repo     CertRepository
	producer EventProducer
	cfg      Config
	logger   *zap.Logger
}

// NewCertService constructs a CertService with a repository, an event
// producer, workflow configuration, and a logger.
func NewCertService(repo CertRepository, producer EventProducer, cfg Config, logger *zap.Logger) *CertService {
	return &CertService{
		repo:     repo,
		producer: producer,
		cfg:      cfg.withDefaults(),
		logger:   logger.Named("cert_service"),
	}
}

// CreateApply records an exhibition apply under its caller-supplied id. The
// apply is stored auto-approved with the default certificate quota; there is
// no manual audit step in this workflow.
func (s *CertService) CreateApply(ctx context.Context, caller models.CallerID, apply *models.ExhibitionApply) error {
	if len(caller) == 0 {
		return fmt.Errorf("%w: missing caller identity", e.ErrInvalidInput)
	}
	if !apply.ID.Assigned() {
		return fmt.Errorf("%w: missing apply id", e.ErrInvalidInput)
	}
	if err := apply.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.HasApply(ctx, apply.ID)
	if err != nil {
		return fmt.Errorf("failed to check apply existence: %w", err)
	}
	if exists {
		return e.ErrCompanyRepeatedApply
	}

	apply.Status = models.ApprovedStatus(s.cfg.DefaultCertQuota)
	if err := s.repo.PutApply(ctx, apply); err != nil {
		return fmt.Errorf("failed to store apply: %w", err)
	}

	s.producer.Produce(events.ExhibitionApplied, events.Payload{Caller: caller, Apply: apply})
	return nil
}

// CreateCert opens a certificate apply in Pending for an approved exhibition
// apply. The referenced apply must exist and be approved, and the
// certificate id must be unused.
func (s *CertService) CreateCert(ctx context.Context, caller models.CallerID, cert *models.PassCert) error {
	if len(caller) == 0 {
		return fmt.Errorf("%w: missing caller identity", e.ErrInvalidInput)
	}
	if !cert.ID.Assigned() || !cert.ApplyID.Assigned() {
		return fmt.Errorf("%w: missing certificate or apply id", e.ErrInvalidInput)
	}

	apply, err := s.repo.GetApply(ctx, cert.ApplyID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.ErrCompanyNotApply
		}
		return fmt.Errorf("failed to load apply: %w", err)
	}
	if apply.Status.Kind != models.Approved {
		return fmt.Errorf("%w: status %s", e.ErrCompanyNotApproved, apply.Status.Kind)
	}

	exists, err := s.repo.HasCert(ctx, cert.ID)
	if err != nil {
		return fmt.Errorf("failed to check certificate existence: %w", err)
	}
	if exists {
		return e.ErrCertRepeatedApply
	}

	cert.Status = models.CertPending
	if err := s.repo.PutCert(ctx, cert); err != nil {
		return fmt.Errorf("failed to store certificate: %w", err)
	}

	s.producer.Produce(events.CertApplied, events.Payload{Caller: caller, Cert: cert})
	return nil
}

// Approve moves a Pending certificate apply to Approved.
func (s *CertService) Approve(ctx context.Context, caller models.CallerID, id models.CertID) error {
	return s.transition(ctx, caller, id, models.CertPending, models.CertApproved, events.CertApproved)
}

// Reject moves a Pending certificate apply to Rejected, a terminal state.
func (s *CertService) Reject(ctx context.Context, caller models.CallerID, id models.CertID) error {
	return s.transition(ctx, caller, id, models.CertPending, models.CertRejected, events.CertRejected)
}

// MarkMade records that an Approved certificate has been produced.
func (s *CertService) MarkMade(ctx context.Context, caller models.CallerID, id models.CertID) error {
	return s.transition(ctx, caller, id, models.CertApproved, models.CertMade, events.CertMade)
}

// MarkIssued records that a Made certificate has been handed out. Issued is
// terminal.
func (s *CertService) MarkIssued(ctx context.Context, caller models.CallerID, id models.CertID) error {
	return s.transition(ctx, caller, id, models.CertMade, models.CertIssued, events.CertIssued)
}

// transition validates the stored status against the transition's
// precondition and commits the new status. Re-running an already-applied
// transition fails instead of silently succeeding.
func (s *CertService) transition(ctx context.Context, caller models.CallerID, id models.CertID, want, next models.CertStatus, eventType events.EventType) error {
	if len(caller) == 0 {
		return fmt.Errorf("%w: missing caller identity", e.ErrInvalidInput)
	}
	if !id.Assigned() {
		return fmt.Errorf("%w: missing certificate id", e.ErrInvalidInput)
	}

	cert, err := s.repo.GetCert(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return e.ErrCertApplyNonExistent
		}
		return fmt.Errorf("failed to load certificate: %w", err)
	}
	if cert.Status != want {
		return fmt.Errorf("%w: have %s, want %s", e.ErrCertApplyStatus, cert.Status, want)
	}

	cert.Status = next
	if err := s.repo.PutCert(ctx, cert); err != nil {
		return fmt.Errorf("failed to store certificate: %w", err)
	}

	s.producer.Produce(eventType, events.Payload{Caller: caller, Cert: cert})
	return nil
}

// Apply returns the exhibition apply stored under id.
func (s *CertService) Apply(ctx context.Context, id models.ApplyID) (*models.ExhibitionApply, error) {
	apply, err := s.repo.GetApply(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load apply: %w", err)
	}
	return apply, nil
}

// Cert returns the certificate apply stored under id.
func (s *CertService) Cert(ctx context.Context, id models.CertID) (*models.PassCert, error) {
	cert, err := s.repo.GetCert(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	return cert, nil
}
