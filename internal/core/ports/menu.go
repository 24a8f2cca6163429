package ports

import "kiosk/internal/core/domain/model/menu"

// Menu is the read-only product catalog used at intake to snapshot names and prices.
type Menu interface {
	// Product returns the product with the given id or errs.ObjectNotFoundError.
	Product(id string) (menu.Product, error)

	// Products lists the catalog in file order.
	Products() []menu.Product
}
