// backend/utils/normalize_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "YUC123", NormalizePlate("yuc-123"))
	assert.Equal(t, "YUC123", NormalizePlate(" YUC 123 "))
	assert.Equal(t, "YUC123", NormalizePlate("YUC123"))
	assert.Equal(t, "", NormalizePlate("  "))
}

func TestNormalizeEconomicNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", NormalizeEconomicNumber("42.0"), "spreadsheet float artifacts are stripped")
	assert.Equal(t, "VYV-0042", NormalizeEconomicNumber(" VYV-0042 "))
	assert.Equal(t, "42", NormalizeEconomicNumber("42"))
}
