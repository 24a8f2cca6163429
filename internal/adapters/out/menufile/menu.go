// Package menufile loads the read-only kiosk menu from a YAML file.
//
// Example file:
//
//	products:
//	  - id: latte
//	    category: Coffee
//	    name: Latte
//	    price: "5.00"
//	  - id: alfajor
//	    category: Bakery
//	    name: Alfajor
//	    price: "2.50"
//	    available: false
//
// available defaults to true. Prices are decimal strings; unquoted numbers are
// accepted too and read from their literal text.
package menufile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/menu"
	"kiosk/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

type fileDTO struct {
	Products []productDTO `yaml:"products"`
}

type productDTO struct {
	ID        string `yaml:"id"`
	Category  string `yaml:"category"`
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Available *bool  `yaml:"available"`
}

// Menu implements ports.Menu over an immutable product list.
type Menu struct {
	products []menu.Product
	byID     map[string]menu.Product
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Menu, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

// Parse decodes a menu document. Every product problem is reported, not only the first.
func Parse(r io.Reader) (*Menu, error) {
	var doc fileDTO
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.NewValueIsRequiredError("menu products")
		}
		return nil, errs.NewValueIsInvalidErrorWithCause("menu file", err)
	}
	if len(doc.Products) == 0 {
		return nil, errs.NewValueIsRequiredError("menu products")
	}

	m := &Menu{
		products: make([]menu.Product, 0, len(doc.Products)),
		byID:     make(map[string]menu.Product, len(doc.Products)),
	}
	var problems []error
	for i, dto := range doc.Products {
		p, err := dto.toDomain()
		if err != nil {
			problems = append(problems, fmt.Errorf("product %d: %w", i+1, err))
			continue
		}
		if _, dup := m.byID[p.ID()]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"product id", fmt.Errorf("%q is listed twice", p.ID())))
			continue
		}
		m.products = append(m.products, p)
		m.byID[p.ID()] = p
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return m, nil
}

func (dto productDTO) toDomain() (menu.Product, error) {
	price, err := kernel.MoneyFromString(dto.Price)
	if err != nil {
		return menu.Product{}, err
	}
	available := true
	if dto.Available != nil {
		available = *dto.Available
	}
	return menu.NewProduct(dto.ID, dto.Category, dto.Name, price, available)
}

// Product returns the product with the given id or errs.ObjectNotFoundError.
func (m *Menu) Product(id string) (menu.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return menu.Product{}, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

// Products lists the catalog in file order, unavailable products included.
func (m *Menu) Products() []menu.Product {
	out := make([]menu.Product, len(m.products))
	copy(out, m.products)
	return out
}
