package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string           `json:"name" validate:"required,max=10"`
	Price decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost  *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	Date  string           `json:"date" validate:"isodate"`
	Role  string           `json:"role" validate:"omitempty,oneof=admin editor viewer"`
}

func TestValidate_Valido(t *testing.T) {
	v, err := NewDefaultValidator()
	require.NoError(t, err)

	err = v.Validate(sample{Name: "Widget", Price: decimal.RequireFromString("2.50"), Date: "2024-01-31"})
	assert.NoError(t, err)
}

func TestValidate_MensajesConNombreJSON(t *testing.T) {
	v, err := NewDefaultValidator()
	require.NoError(t, err)

	neg := decimal.NewFromInt(-1)
	err = v.Validate(sample{Price: decimal.NewFromInt(-3), Cost: &neg, Date: "31/01/2024", Role: "root"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	msgs := Messages(err)
	assert.Contains(t, msgs, "name: es requerido")
	assert.Contains(t, msgs, "price: debe ser mayor o igual a 0")
	assert.Contains(t, msgs, "cost: debe ser mayor o igual a 0")
	assert.Contains(t, msgs, "date: debe tener formato YYYY-MM-DD")
	assert.Contains(t, msgs, "role: debe ser uno de [admin editor viewer]")
}

func TestValidate_TopeSuperior(t *testing.T) {
	v, err := NewDefaultValidator()
	require.NoError(t, err)

	type bounded struct {
		Quantity int `json:"quantity" validate:"gte=0,lte=2147483647"`
	}
	require.NoError(t, v.Validate(bounded{Quantity: 2147483647}))
	err = v.Validate(bounded{Quantity: 2147483648})
	require.Error(t, err)
	assert.Equal(t, []string{"quantity: debe ser menor o igual a 2147483647"}, Messages(err))
}

func TestMessages_ErrorAjeno(t *testing.T) {
	assert.Nil(t, Messages(assert.AnError))
	assert.False(t, IsValidationError(assert.AnError))
}
