// Package menu models the read-only products a customer can order at the kiosk.
// The menu is loaded from a file at start-up; it is not managed by this service.
package menu

import (
	"errors"
	"strings"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/pkg/errs"
	"kiosk/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is one menu entry with its current price.
type Product struct {
	id        string
	category  string
	name      string
	price     kernel.Money
	available bool

	guard guard.ConstructorGuard
}

func NewProduct(id, category, name string, price kernel.Money, available bool) (Product, error) {
	p := Product{
		id:        strings.TrimSpace(id),
		category:  strings.TrimSpace(category),
		name:      strings.TrimSpace(name),
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	var problems []error
	if p.id == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product id"))
	}
	if p.name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product name"))
	}
	if err := price.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return Product{}, err
	}
	p.price = price
	return p, nil
}

func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p Product) ID() string { return p.id }
func (p Product) Category() string { return p.category }
func (p Product) Name() string { return p.name }
func (p Product) Price() kernel.Money { return p.price }
func (p Product) Available() bool { return p.available }
