package memory

import (
	"context"
	"errors"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/core/ports"
)

// ErrNoActiveTransaction mirrors gorm.ErrInvalidTransaction for the memory store.
var ErrNoActiveTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
}

// NewUnitOfWorkFactory creates a factory over store. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, publisher: f.publisher}
}

// UnitOfWork buffers inserts and updates and applies them to the store on Commit.
// Without Begin, repository writes are applied immediately.
type UnitOfWork struct {
	store     *Store
	publisher ports.EventPublisher
	active    bool
	inserts   []*order.Order
	updates   []*order.Order
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies buffered writes and then publishes the aggregates' events.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	inserts, updates := uow.inserts, uow.updates
	uow.reset()

	if err := uow.store.apply(inserts, updates); err != nil {
		return err
	}
	uow.publish(ctx, append(inserts, updates...))
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &repository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.inserts = nil
	uow.updates = nil
}

func (uow *UnitOfWork) write(ctx context.Context, inserts, updates []*order.Order) error {
	if uow.active {
		uow.inserts = append(uow.inserts, inserts...)
		uow.updates = append(uow.updates, updates...)
		return nil
	}
	if err := uow.store.apply(inserts, updates); err != nil {
		return err
	}
	uow.publish(ctx, append(inserts, updates...))
	return nil
}

func (uow *UnitOfWork) publish(ctx context.Context, aggregates []*order.Order) {
	for _, o := range aggregates {
		events := o.Events()
		o.ClearEvents()
		if uow.publisher != nil && len(events) > 0 {
			uow.publisher.Publish(ctx, events...)
		}
	}
}

// pending returns the newest uncommitted version of the order, if any.
func (uow *UnitOfWork) pending(match func(o *order.Order) bool) *order.Order {
	for i := len(uow.updates) - 1; i >= 0; i-- {
		if match(uow.updates[i]) {
			return uow.updates[i]
		}
	}
	for i := len(uow.inserts) - 1; i >= 0; i-- {
		if match(uow.inserts[i]) {
			return uow.inserts[i]
		}
	}
	return nil
}

type repository struct {
	uow *UnitOfWork
}

func (r *repository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, []*order.Order{aggregate}, nil)
}

func (r *repository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, nil, []*order.Order{aggregate})
}

func (r *repository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if o := r.uow.pending(func(o *order.Order) bool { return o.ID().IsEqual(id) }); o != nil {
		return clone(o)
	}
	return r.uow.store.get(ctx, id)
}

func (r *repository) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	if o := r.uow.pending(func(o *order.Order) bool { return o.Token().String() == token }); o != nil {
		return clone(o)
	}
	return r.uow.store.GetByToken(ctx, token)
}

// GetByTokenForUpdate relies on the caller's per-token lock; the store has no row locks.
func (r *repository) GetByTokenForUpdate(ctx context.Context, token string) (*order.Order, error) {
	return r.GetByToken(ctx, token)
}

func (r *repository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.uow.store.GetAll(ctx)
}
