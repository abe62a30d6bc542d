package catalog_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func isValidation(err error) bool {
	return httperr.IsBusiness(err, httperr.CodeValidation)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, catalog.ValidateName("Carlos The Blade"))
	assert.True(t, isValidation(catalog.ValidateName("  ")))
	assert.True(t, isValidation(catalog.ValidateName(strings.Repeat("x", catalog.MaxNameLength+1))))
}

func TestValidateDayOff(t *testing.T) {
	six, seven, neg := 6, 7, -1

	assert.NoError(t, catalog.ValidateDayOff(nil))
	assert.NoError(t, catalog.ValidateDayOff(&six))
	assert.True(t, isValidation(catalog.ValidateDayOff(&seven)))
	assert.True(t, isValidation(catalog.ValidateDayOff(&neg)))
}

func TestValidatePriceAndDuration(t *testing.T) {
	assert.NoError(t, catalog.ValidatePrice(decimal.Zero))
	assert.NoError(t, catalog.ValidatePrice(decimal.RequireFromString("25.50")))
	assert.True(t, isValidation(catalog.ValidatePrice(decimal.NewFromInt(-1))))

	assert.NoError(t, catalog.ValidateDuration(30))
	assert.True(t, isValidation(catalog.ValidateDuration(0)))
	assert.True(t, isValidation(catalog.ValidateDuration(catalog.MaxDurationMin+1)))
}
