package menu_test

import (
	"testing"

	"kiosk/internal/core/domain/model/kernel"
	"kiosk/internal/core/domain/model/menu"
	"kiosk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := menu.NewProduct(" espresso ", "Cafe", "Espresso", kernel.MustMoney("2.50"), true)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "espresso", p.ID())
		assert.Equal(t, "2.50", p.Price().String())
		assert.True(t, p.Available())
	})

	t.Run("collects every problem", func(t *testing.T) {
		_, err := menu.NewProduct("", "Cafe", "", kernel.Money{}, true)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "product id")
		assert.Contains(t, err.Error(), "product name")
		assert.Contains(t, err.Error(), "Money must be created")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		assert.Equal(t, menu.ErrProductIsNotConstructed, menu.Product{}.Validate())
	})
}
