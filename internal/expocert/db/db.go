// Package db implements the workflow repositories on GORM. The registry key
// spaces (owner -> company list, company -> apply list) are stored as
// positional rows and replaced wholesale on every put, matching the
// last-writer-wins list semantics of the serialized invocation model. The
// certificate key spaces are plain single-record tables.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/gartstein/expocert/internal/expocert/controller"
	dbmodels "github.com/gartstein/expocert/internal/expocert/db/models"
	e "github.com/gartstein/expocert/internal/expocert/errors"
	"github.com/gartstein/expocert/internal/expocert/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&dbmodels.CompanyRecord{},
		&dbmodels.ApplyRecord{},
		&dbmodels.DirectApplyRecord{},
		&dbmodels.CertRecord{},
	)
}

// GetCompanies loads an owner's company list in insertion order, empty when
// the owner has none.
func (r *Repository) GetCompanies(ctx context.Context, owner models.CallerID) ([]models.Company, error) {
	var records []dbmodels.CompanyRecord
	result := r.db.WithContext(ctx).
		Where("owner = ?", []byte(owner)).
		Order("position").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	companies := make([]models.Company, 0, len(records))
	for _, rec := range records {
		companies = append(companies, models.Company{
			ID:            rec.CompanyID,
			Name:          rec.Name,
			Address:       rec.Address,
			Contact:       rec.Contact,
			Email:         rec.Email,
			Mobile:        rec.Mobile,
			BusinessScope: rec.BusinessScope,
		})
	}
	return companies, nil
}

// PutCompanies replaces an owner's stored company list.
func (r *Repository) PutCompanies(ctx context.Context, owner models.CallerID, companies []models.Company) error {
	records := make([]dbmodels.CompanyRecord, 0, len(companies))
	for i, c := range companies {
		records = append(records, dbmodels.CompanyRecord{
			Owner:         owner,
			Position:      i,
			CompanyID:     c.ID,
			Name:          c.Name,
			Address:       c.Address,
			Contact:       c.Contact,
			Email:         c.Email,
			Mobile:        c.Mobile,
			BusinessScope: c.BusinessScope,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner = ?", []byte(owner)).Delete(&dbmodels.CompanyRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// GetApplies loads a company's exhibition apply list in insertion order,
// empty when the company has none.
func (r *Repository) GetApplies(ctx context.Context, companyID models.CompanyID) ([]models.ExhibitionApply, error) {
	var records []dbmodels.ApplyRecord
	result := r.db.WithContext(ctx).
		Where("company_id = ?", []byte(companyID)).
		Order("position").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	applies := make([]models.ExhibitionApply, 0, len(records))
	for _, rec := range records {
		applies = append(applies, models.ExhibitionApply{
			ID:         rec.ApplyID,
			CompanyID:  rec.CompanyID,
			Exhibition: models.Exhibition(rec.Exhibition),
			Status: models.AuditStatus{
				Kind:      models.AuditKind(rec.Status),
				CertQuota: rec.CertQuota,
				Reason:    rec.Reason,
			},
			Purpose:  models.ParticipationPurpose(rec.Purpose),
			Exhibits: rec.Exhibits,
			Booth:    models.BoothType{Kind: models.BoothKind(rec.BoothKind), Value: rec.BoothValue},
		})
	}
	return applies, nil
}

// PutApplies replaces a company's stored exhibition apply list.
func (r *Repository) PutApplies(ctx context.Context, companyID models.CompanyID, applies []models.ExhibitionApply) error {
	records := make([]dbmodels.ApplyRecord, 0, len(applies))
	for i, a := range applies {
		records = append(records, dbmodels.ApplyRecord{
			CompanyID:  companyID,
			Position:   i,
			ApplyID:    a.ID,
			Exhibition: string(a.Exhibition),
			Status:     string(a.Status.Kind),
			CertQuota:  a.Status.CertQuota,
			Reason:     a.Status.Reason,
			Purpose:    string(a.Purpose),
			Exhibits:   a.Exhibits,
			BoothKind:  string(a.Booth.Kind),
			BoothValue: a.Booth.Value,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", []byte(companyID)).Delete(&dbmodels.ApplyRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// WithTransaction runs fn against a transactional view of the repository.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo controller.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// GetApply loads the exhibition apply stored under id.
func (r *Repository) GetApply(ctx context.Context, id models.ApplyID) (*models.ExhibitionApply, error) {
	var rec dbmodels.DirectApplyRecord
	result := r.db.WithContext(ctx).First(&rec, "apply_id = ?", []byte(id))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}

	return &models.ExhibitionApply{
		ID:         rec.ApplyID,
		CompanyID:  rec.CompanyID,
		Exhibition: models.Exhibition(rec.Exhibition),
		Status: models.AuditStatus{
			Kind:      models.AuditKind(rec.Status),
			CertQuota: rec.CertQuota,
			Reason:    rec.Reason,
		},
		Purpose:  models.ParticipationPurpose(rec.Purpose),
		Exhibits: rec.Exhibits,
		Booth:    models.BoothType{Kind: models.BoothKind(rec.BoothKind), Value: rec.BoothValue},
	}, nil
}

// HasApply reports whether an exhibition apply is stored under id.
func (r *Repository) HasApply(ctx context.Context, id models.ApplyID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbmodels.DirectApplyRecord{}).
		Where("apply_id = ?", []byte(id)).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// PutApply stores an exhibition apply under its id, replacing any previous
// record.
func (r *Repository) PutApply(ctx context.Context, apply *models.ExhibitionApply) error {
	rec := dbmodels.DirectApplyRecord{
		ApplyID:    apply.ID,
		CompanyID:  apply.CompanyID,
		Exhibition: string(apply.Exhibition),
		Status:     string(apply.Status.Kind),
		CertQuota:  apply.Status.CertQuota,
		Reason:     apply.Status.Reason,
		Purpose:    string(apply.Purpose),
		Exhibits:   apply.Exhibits,
		BoothKind:  string(apply.Booth.Kind),
		BoothValue: apply.Booth.Value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// GetCert loads the certificate apply stored under id.
func (r *Repository) GetCert(ctx context.Context, id models.CertID) (*models.PassCert, error) {
	var rec dbmodels.CertRecord
	result := r.db.WithContext(ctx).First(&rec, "cert_id = ?", []byte(id))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &models.PassCert{
		ID:      rec.CertID,
		ApplyID: rec.ApplyID,
		Status:  models.CertStatus(rec.Status),
	}, nil
}

// HasCert reports whether a certificate apply is stored under id.
func (r *Repository) HasCert(ctx context.Context, id models.CertID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbmodels.CertRecord{}).
		Where("cert_id = ?", []byte(id)).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// PutCert stores a certificate apply under its id, replacing any previous
// record.
func (r *Repository) PutCert(ctx context.Context, cert *models.PassCert) error {
	rec := dbmodels.CertRecord{
		CertID:  cert.ID,
		ApplyID: cert.ApplyID,
		Status:  string(cert.Status),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	result := r.db.WithContext(ctx).Exec(query, params...)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
