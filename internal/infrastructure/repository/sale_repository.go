package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sales ledger repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *saleRepository) Replace(ctx context.Context, supersededID uuid.UUID, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.SaleRecord{}, "id = ?", supersededID).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleRecord, error) {
	var record entity.SaleRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *saleRepository) Update(ctx context.Context, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *saleRepository) ListByDate(ctx context.Context, date string) ([]entity.SaleRecord, error) {
	var records []entity.SaleRecord
	err := r.db.WithContext(ctx).
		Scopes(ForDate(date), NewestFirst).
		Find(&records).Error
	return records, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.SaleRecord, int64, error) {
	var records []entity.SaleRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SaleRecord{}).
		Scopes(ForDate(params.Date), ForWaiter(params.Waiter))

	if params.Notes != "" {
		query = query.Where("notes = ?", params.Notes)
	}
	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR waiter ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(NewestFirst, Paginate(params.Pagination)).Find(&records).Error
	return records, total, err
}

type closureRepository struct {
	db *gorm.DB
}

// NewClosureRepository creates a new day closure repository
func NewClosureRepository(db *gorm.DB) domainRepo.ClosureRepository {
	return &closureRepository{db: db}
}

func (r *closureRepository) Seal(ctx context.Context, closure *entity.DayClosure) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(closure).Error; err != nil {
			return err
		}
		if len(closure.SaleIDs) == 0 {
			return nil
		}
		return tx.Model(&entity.SaleRecord{}).
			Where("id IN ? AND closed = ?", closure.SaleIDs, false).
			Updates(map[string]interface{}{
				"closed":     true,
				"closure_id": closure.ID,
			}).Error
	})
}

func (r *closureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DayClosure, error) {
	var closure entity.DayClosure
	err := r.db.WithContext(ctx).First(&closure, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closure, err
}

func (r *closureRepository) ListByDate(ctx context.Context, date string) ([]entity.DayClosure, error) {
	var closures []entity.DayClosure
	err := r.db.WithContext(ctx).
		Scopes(ForDate(date)).
		Order("closed_at DESC").
		Find(&closures).Error
	return closures, err
}
