package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/reporting"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"gorm.io/gorm"
)

// GormReportRepository implements reporting.ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormReportRepository) FilterFields() map[string]string {
	return map[string]string{
		"initiativeStoreId": "initiative_store_id",
		"employeeId":        "employee_id",
		"brandName":         "brand_name",
		"date":              "date",
		"unitsSold":         "units_sold",
		"totalValue":        "total_value",
		"createdAt":         "created_at",
		"updatedAt":         "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormReportRepository) SearchFields() []string {
	return []string{"brand_name", "comment"}
}

// Save creates or updates a report
func (r *GormReportRepository) Save(ctx context.Context, rep *reporting.Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

// FindByID finds a report by ID
func (r *GormReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*reporting.Report, error) {
	var rep reporting.Report
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// List returns reports matching the builder's filter, sort and window
func (r *GormReportRepository) List(ctx context.Context, qb *query.Builder) ([]reporting.Report, error) {
	var reports []reporting.Report
	if err := r.db.WithContext(ctx).
		Model(&reporting.Report{}).
		Scopes(qb.Scope()).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Count counts reports matching the structural filter only
func (r *GormReportRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&reporting.Report{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRange returns an explicit skip/limit window for exports
func (r *GormReportRepository) ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]reporting.Report, error) {
	var reports []reporting.Report
	if err := r.db.WithContext(ctx).
		Model(&reporting.Report{}).
		Scopes(qb.RangeScope(skip, limit)).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// GormGameWinnerRepository implements reporting.GameWinnerRepository using GORM
type GormGameWinnerRepository struct {
	db *gorm.DB
}

// NewGormGameWinnerRepository creates a new GormGameWinnerRepository
func NewGormGameWinnerRepository(db *gorm.DB) *GormGameWinnerRepository {
	return &GormGameWinnerRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormGameWinnerRepository) FilterFields() map[string]string {
	return map[string]string{
		"initiativeStoreId": "initiative_store_id",
		"winnerName":        "winner_name",
		"prize":             "prize",
		"wonAt":             "won_at",
		"createdAt":         "created_at",
		"updatedAt":         "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormGameWinnerRepository) SearchFields() []string {
	return []string{"winner_name", "prize"}
}

// Save creates or updates a game winner
func (r *GormGameWinnerRepository) Save(ctx context.Context, w *reporting.GameWinner) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// List returns game winners matching the builder's filter, sort and window
func (r *GormGameWinnerRepository) List(ctx context.Context, qb *query.Builder) ([]reporting.GameWinner, error) {
	var winners []reporting.GameWinner
	if err := r.db.WithContext(ctx).
		Model(&reporting.GameWinner{}).
		Scopes(qb.Scope()).
		Find(&winners).Error; err != nil {
		return nil, err
	}
	return winners, nil
}

// Count counts game winners matching the structural filter only
func (r *GormGameWinnerRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&reporting.GameWinner{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRange returns an explicit skip/limit window for exports
func (r *GormGameWinnerRepository) ListRange(ctx context.Context, qb *query.Builder, skip, limit int) ([]reporting.GameWinner, error) {
	var winners []reporting.GameWinner
	if err := r.db.WithContext(ctx).
		Model(&reporting.GameWinner{}).
		Scopes(qb.RangeScope(skip, limit)).
		Find(&winners).Error; err != nil {
		return nil, err
	}
	return winners, nil
}

// Ensure the repositories implement their contracts
var (
	_ reporting.ReportRepository     = (*GormReportRepository)(nil)
	_ reporting.GameWinnerRepository = (*GormGameWinnerRepository)(nil)
	_ query.Resource                 = (*GormReportRepository)(nil)
	_ query.Resource                 = (*GormGameWinnerRepository)(nil)
)
