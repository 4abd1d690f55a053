// backend/services/integrity_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanColumnForMixedTypes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		values []string

		wantIssue bool
	}{
		"All text":               {values: []string{"YUC123", "YUC124"}},
		"All numeric":            {values: []string{"42", "43.0", "100"}},
		"Mixed numeric and text": {values: []string{"42", "VYV-0042", "43"}, wantIssue: true},
		"Blanks ignored":         {values: []string{"", "  ", "42", "43"}},
		"Empty sample":           {values: nil},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			issue := scanColumnForMixedTypes("numero_economico", tc.values)
			if !tc.wantIssue {
				assert.Nil(t, issue, "homogeneous columns should not be flagged")
				return
			}
			require.NotNil(t, issue, "mixed columns should be flagged")
			assert.Equal(t, "warning", issue.Severity, "mixed types are reported, never repaired")
			assert.Contains(t, issue.Message, "numero_economico")
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	t.Parallel()

	assert.True(t, looksNumeric("42"))
	assert.True(t, looksNumeric("43.5"))
	assert.False(t, looksNumeric("VYV-0042"))
	assert.False(t, looksNumeric("12a"))
}
