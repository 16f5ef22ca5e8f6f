package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/domain/workforce"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements workforce.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormEmployeeRepository) FilterFields() map[string]string {
	return map[string]string{
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"team":      "team",
		"region":    "region",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormEmployeeRepository) SearchFields() []string {
	return []string{"name", "email"}
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	var e workforce.Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns employees matching the builder's filter, sort and window
func (r *GormEmployeeRepository) List(ctx context.Context, qb *query.Builder) ([]workforce.Employee, error) {
	var employees []workforce.Employee
	if err := r.db.WithContext(ctx).
		Model(&workforce.Employee{}).
		Scopes(qb.Scope()).
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Count counts employees matching the structural filter only
func (r *GormEmployeeRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&workforce.Employee{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormStoreRepository implements workforce.StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FilterFields declares the query keys list endpoints may filter and sort on
func (r *GormStoreRepository) FilterFields() map[string]string {
	return map[string]string{
		"name":      "name",
		"state":     "state",
		"area":      "area",
		"category":  "category",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
}

// SearchFields declares the columns free-text search runs over
func (r *GormStoreRepository) SearchFields() []string {
	return []string{"name", "area"}
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, s *workforce.Store) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// FindByID finds a store by ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Store, error) {
	var s workforce.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ExistsByNameStateArea reports whether a store with the identifying triple
// already exists.
func (r *GormStoreRepository) ExistsByNameStateArea(ctx context.Context, name, state, area string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&workforce.Store{}).
		Where("name = ? AND state = ? AND area = ?", name, state, area).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns stores matching the builder's filter, sort and window
func (r *GormStoreRepository) List(ctx context.Context, qb *query.Builder) ([]workforce.Store, error) {
	var stores []workforce.Store
	if err := r.db.WithContext(ctx).
		Model(&workforce.Store{}).
		Scopes(qb.Scope()).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Count counts stores matching the structural filter only
func (r *GormStoreRepository) Count(ctx context.Context, qb *query.Builder) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&workforce.Store{}).
		Scopes(qb.CountScope()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormAgencyRepository implements workforce.AgencyRepository using GORM
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewGormAgencyRepository creates a new GormAgencyRepository
func NewGormAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// Save creates or updates an agency
func (r *GormAgencyRepository) Save(ctx context.Context, a *workforce.Agency) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// FindByID finds an agency by ID
func (r *GormAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Agency, error) {
	var a workforce.Agency
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Ensure the repositories implement their contracts
var (
	_ workforce.EmployeeRepository = (*GormEmployeeRepository)(nil)
	_ workforce.StoreRepository    = (*GormStoreRepository)(nil)
	_ workforce.AgencyRepository   = (*GormAgencyRepository)(nil)
	_ query.Resource               = (*GormEmployeeRepository)(nil)
	_ query.Resource               = (*GormStoreRepository)(nil)
)
