// Package controller implements the core business logic of the exhibition
// workflows: the bounded company/apply registry and the certificate state
// machine, orchestrating repository operations and sending lifecycle events.
package controller

import (
	"context"
	"fmt"

	"github.com/gartstein/expocert/internal/expocert/bounded"
	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/gartstein/expocert/internal/expocert/events"
	"github.com/gartstein/expocert/internal/expocert/identity"
	"github.com/gartstein/expocert/internal/expocert/models"
	"go.uber.org/zap"
)

// EventProducer sends a fire-and-forget lifecycle event.
type EventProducer interface {
	Produce(eventType events.EventType, payload events.Payload)
}

// Repository is the storage interface for the bounded registry: per-owner
// company lists and per-company exhibition apply lists. Gets of absent keys
// return empty, not an error. Puts replace the whole stored list.
type Repository interface {
	GetCompanies(ctx context.Context, owner models.CallerID) ([]models.Company, error)
	PutCompanies(ctx context.Context, owner models.CallerID, companies []models.Company) error
	GetApplies(ctx context.Context, companyID models.CompanyID) ([]models.ExhibitionApply, error)
	PutApplies(ctx context.Context, companyID models.CompanyID, applies []models.ExhibitionApply) error
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
}

// Config carries the registry limits and the default certificate quota
// granted on auto-approval.
type Config struct {
	// MaxCompanies caps each owner's company list.
	MaxCompanies int
	// MaxApplies caps each company's exhibition apply list.
	MaxApplies int
	// DefaultCertQuota is the certificate allowance recorded on approval.
	DefaultCertQuota uint8
}

// DefaultConfig returns the production limits.
func DefaultConfig() Config {
	return Config{MaxCompanies: 100, MaxApplies: 3, DefaultCertQuota: 10}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxCompanies <= 0 {
		c.MaxCompanies = d.MaxCompanies
	}
	if c.MaxApplies <= 0 {
		c.MaxApplies = d.MaxApplies
	}
	if c.DefaultCertQuota == 0 {
		c.DefaultCertQuota = d.DefaultCertQuota
	}
	return c
}

// ApplyService manages the bounded registry of companies and their
// exhibition applies.
type ApplyService struct {
	repo     Repository
	producer EventProducer
	cfg      Config
	logger   *zap.Logger
}

// NewApplyService constructs an ApplyService with a repository, an event
// producer, registry limits, and a logger.
func NewApplyService(repo Repository, producer EventProducer, cfg Config, logger *zap.Logger) *ApplyService {
	return &ApplyService{
		repo:     repo,
		producer: producer,
		cfg:      cfg.withDefaults(),
		logger:   logger.Named("apply_service"),
	}
}

func companyEq(a, b models.Company) bool {
	return a.Equal(&b)
}

func applyEq(a, b models.ExhibitionApply) bool {
	return a.Equal(&b)
}

// Submit records an exhibition apply for the caller's company, creating the
// company on first sight. All checks run before any write; on success the
// submitted records carry their assigned ids and an ExhibitionApplied event
// is fired.
//
// A company with no id is matched against the stored list by name; on a
// match the stored company's id wins and the apply joins its list. The apply
// is auto-approved with the default certificate quota.
func (s *ApplyService) Submit(ctx context.Context, caller models.CallerID, company *models.Company, apply *models.ExhibitionApply) error {
	if len(caller) == 0 {
		return fmt.Errorf("%w: missing caller identity", e.ErrInvalidInput)
	}
	if err := company.Validate(); err != nil {
		return err
	}
	if err := apply.Validate(); err != nil {
		return err
	}

	stored, err := s.repo.GetCompanies(ctx, caller)
	if err != nil {
		return fmt.Errorf("failed to load company list: %w", err)
	}
	companies := bounded.From(stored, s.cfg.MaxCompanies)

	existing, found := companies.Find(*company, companyEq)
	if !found {
		if err := s.submitNewCompany(ctx, caller, companies, company, apply); err != nil {
			return err
		}
	} else {
		// The stored side wins on a name match: the incoming company adopts
		// the already-assigned id and its apply joins the existing list.
		if err := s.submitExistingCompany(ctx, existing, apply); err != nil {
			return err
		}
		company.ID = existing.ID
	}

	// Produce is non-blocking; calling it inline keeps the events of one
	// invocation in call order.
	s.producer.Produce(events.ExhibitionApplied, events.Payload{
		Caller:  caller,
		Company: company,
		Apply:   apply,
	})
	return nil
}

// submitNewCompany handles the brand-new path: assign the company id, create
// its single-element apply list, and commit both lists in one transaction.
func (s *ApplyService) submitNewCompany(ctx context.Context, caller models.CallerID, companies *bounded.List[models.Company], company *models.Company, apply *models.ExhibitionApply) error {
	if companies.Full() {
		return fmt.Errorf("%w: limit %d", e.ErrCompanyLimitExceeded, s.cfg.MaxCompanies)
	}

	companyID, err := identity.DeriveCompanyID(caller, companies.Len())
	if err != nil {
		return err
	}
	applyID, err := identity.DeriveApplyID(companyID, 0)
	if err != nil {
		return err
	}

	// Work on copies so a failed commit leaves the caller's records exactly
	// as submitted.
	newCompany := *company
	newCompany.ID = companyID
	newApply := *apply
	newApply.ID = applyID
	newApply.CompanyID = companyID
	newApply.Status = models.ApprovedStatus(s.cfg.DefaultCertQuota)

	if err := companies.Push(newCompany); err != nil {
		return fmt.Errorf("%w: limit %d", e.ErrCompanyLimitExceeded, s.cfg.MaxCompanies)
	}

	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		if err := repo.PutCompanies(ctx, caller, companies.Items()); err != nil {
			return err
		}
		return repo.PutApplies(ctx, companyID, []models.ExhibitionApply{newApply})
	})
	if err != nil {
		return fmt.Errorf("failed to store submission: %w", err)
	}

	*company = newCompany
	*apply = newApply
	return nil
}

// submitExistingCompany extends the stored company's apply list, enforcing
// the dedup rule and the apply capacity.
func (s *ApplyService) submitExistingCompany(ctx context.Context, company models.Company, apply *models.ExhibitionApply) error {
	newApply := *apply
	newApply.CompanyID = company.ID

	stored, err := s.repo.GetApplies(ctx, company.ID)
	if err != nil {
		return fmt.Errorf("failed to load apply list: %w", err)
	}
	applies := bounded.From(stored, s.cfg.MaxApplies)

	if applies.Contains(newApply, applyEq) {
		return fmt.Errorf("%w: %s", e.ErrCompanyAlreadyApplied, newApply.Exhibition)
	}
	if applies.Full() {
		return fmt.Errorf("%w: limit %d", e.ErrApplyLimitExceeded, s.cfg.MaxApplies)
	}

	applyID, err := identity.DeriveApplyID(company.ID, applies.Len())
	if err != nil {
		return err
	}
	newApply.ID = applyID
	newApply.Status = models.ApprovedStatus(s.cfg.DefaultCertQuota)

	if err := applies.Push(newApply); err != nil {
		return fmt.Errorf("%w: limit %d", e.ErrApplyLimitExceeded, s.cfg.MaxApplies)
	}
	if err := s.repo.PutApplies(ctx, company.ID, applies.Items()); err != nil {
		return fmt.Errorf("failed to store apply list: %w", err)
	}

	*apply = newApply
	return nil
}

// Companies lists the caller's registered companies; empty when none exist.
func (s *ApplyService) Companies(ctx context.Context, caller models.CallerID) ([]models.Company, error) {
	companies, err := s.repo.GetCompanies(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to load company list: %w", err)
	}
	return companies, nil
}

// Applies lists a company's exhibition applies; empty when none exist.
func (s *ApplyService) Applies(ctx context.Context, companyID models.CompanyID) ([]models.ExhibitionApply, error) {
	applies, err := s.repo.GetApplies(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load apply list: %w", err)
	}
	return applies, nil
}
