// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("product")))
	assert.Equal(t, CodeEmptyCart, CodeOf(EmptyCart()))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain error")))
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("db: %w", errors.New("broken pipe"))))
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("service layer: %w", Conflict("duplicate sku"))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeConflict))
	assert.False(t, Is(wrapped, CodeNotFound))
}

func TestInsufficientStockDetails(t *testing.T) {
	err := InsufficientStock("Widget", 5, 2)

	assert.Equal(t, CodeInsufficientStock, err.Code)
	assert.Contains(t, err.Message, "Widget")
	assert.Contains(t, err.Message, "requested 5")
	assert.Contains(t, err.Message, "available 2")

	details, ok := err.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 5, details["requested"])
	assert.Equal(t, 2, details["available"])
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "order not found", NotFound("order").Error())
}
