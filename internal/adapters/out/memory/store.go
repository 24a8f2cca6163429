// Package memory is a process-local order store for single-node deployments and
// tests. It implements the same ports as the Postgres adapter.
package memory

import (
	"context"
	"sync"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/order"
	"kiosk/internal/pkg/errs"
)

// Store keeps committed orders. Orders are copied in and out, so changes to an
// aggregate are only visible to others after a unit of work commits.
type Store struct {
	mu       sync.RWMutex
	byToken  map[string]*order.Order
	byID     map[kernel.UUID]string
	sequence int64
}

func NewStore() *Store {
	return &Store{
		byToken: make(map[string]*order.Order),
		byID:    make(map[kernel.UUID]string),
	}
}

// GetAll returns copies of every committed order, read under one lock.
func (s *Store) GetAll(ctx context.Context) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError("get all orders", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*order.Order, 0, len(s.byToken))
	for _, o := range s.byToken {
		c, err := clone(o)
		if err != nil {
			return nil, err
		}
		orders = append(orders, c)
	}
	return orders, nil
}

// GetByToken returns a copy of the committed order.
func (s *Store) GetByToken(ctx context.Context, token string) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byToken[token]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", token)
	}
	return clone(o)
}

func (s *Store) get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return clone(s.byToken[token])
}

// apply writes a batch of inserts and updates atomically. Inserts are numbered
// in batch order.
func (s *Store) apply(inserts, updates []*order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range inserts {
		if _, exists := s.byToken[o.Token().String()]; exists {
			return errs.NewStorageUnavailableError("insert order",
				errs.NewValueIsInvalidError("duplicate token "+o.Token().String()))
		}
		if o.Sequence() != 0 {
			return order.ErrSequenceAlreadyAssigned
		}
	}
	for _, o := range updates {
		if _, exists := s.byToken[o.Token().String()]; !exists && !contains(inserts, o) {
			return errs.NewObjectNotFoundError("order", o.Token().String())
		}
	}

	for _, o := range inserts {
		s.sequence++
		if err := o.AssignSequence(s.sequence); err != nil {
			return err
		}
		if err := s.put(o); err != nil {
			return err
		}
	}
	for _, o := range updates {
		if err := s.put(o); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(o *order.Order) error {
	c, err := clone(o)
	if err != nil {
		return err
	}
	s.byToken[c.Token().String()] = c
	s.byID[c.ID()] = c.Token().String()
	return nil
}

func contains(orders []*order.Order, target *order.Order) bool {
	for _, o := range orders {
		if o.IsEqual(target) {
			return true
		}
	}
	return false
}

// clone drops pending events; line items are immutable and shared.
func clone(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Token(),
		o.Tier(),
		o.Status(),
		o.Total(),
		o.CreatedAt(),
		o.UpdatedAt(),
		o.Sequence(),
		o.Items(),
	)
}
