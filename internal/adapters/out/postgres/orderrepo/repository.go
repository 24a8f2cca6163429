package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be nil
// for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its line items and copies the generated sequence
// back onto the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageUnavailableError("insert order", err)
	}

	if err := aggregate.AssignSequence(dto.Sequence); err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update writes status and updatedAt. Everything else on an order is immutable.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.NewStorageUnavailableError("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.Token().String())
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by its internal key.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.withItems(ctx), "order", id.String(), "id = ?", id.Bytes())
}

// GetByToken retrieves an order by its customer token.
func (r *GormOrderRepository) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	return r.first(r.withItems(ctx), "order", token, "token = ?", token)
}

// GetByTokenForUpdate reads the order row with SELECT ... FOR UPDATE. The lock is
// held until the surrounding transaction ends, so it only has an effect inside a
// unit of work.
func (r *GormOrderRepository) GetByTokenForUpdate(ctx context.Context, token string) (*order.Order, error) {
	db := r.withItems(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	return r.first(db, "order", token, "token = ?", token)
}

// GetAll loads every order with its items inside one repeatable-read transaction,
// so the orders and items statements see the same snapshot.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Preload("Items", orderedItems).Order("sequence").Find(&dtos).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, errs.NewStorageUnavailableError("get all orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", orderedItems)
}

func (r *GormOrderRepository) first(db *gorm.DB, name string, key any, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, append([]any{query}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, errs.NewStorageUnavailableError("get "+name, err)
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no")
}
