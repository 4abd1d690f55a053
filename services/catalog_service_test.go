// backend/services/catalog_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vayven/inspecciones/backend/models"
)

var testRoutes = []models.Route{
	{Number: 1, Name: "Centro - Norte"},
	{Number: 12, Name: "Centro - Periférico"},
	{Number: 33, Name: "Aeropuerto"},
}

var testVehicles = []models.Vehicle{
	{EconomicNumber: "VYV-0001", Plate: "YUC100", Empresa: "Transportes del Sureste"},
	{EconomicNumber: "VYV-0042", Plate: "YUC123", Empresa: "Autobuses Peninsulares"},
	{EconomicNumber: "VYV-0043", Plate: "YUC124", Empresa: "Autobuses Peninsulares"},
}

func TestResolveRoute(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		number int
		name   string

		wantNumber int
		wantName   string
		wantError  bool
	}{
		"By number":        {number: 12, wantNumber: 12, wantName: "Centro - Periférico"},
		"By name":          {name: "Aeropuerto", wantNumber: 33, wantName: "Aeropuerto"},
		"Unknown number":   {number: 99, wantError: true},
		"Unknown name":     {name: "Inexistente", wantError: true},
		"Nothing provided": {wantError: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, err := ResolveRoute(testRoutes, tc.number, tc.name)
			if tc.wantError {
				require.Error(t, err, "unresolvable keys should error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNumber, group.Number, "both fields of the group must be filled")
			assert.Equal(t, tc.wantName, group.Name)
		})
	}
}

func TestResolveVehicle(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		economico string
		placa     string
		empresa   string

		wantEconomico string
		wantError     bool
	}{
		"By economic number": {economico: "VYV-0042", wantEconomico: "VYV-0042"},
		"By plate":           {placa: "YUC100", wantEconomico: "VYV-0001"},
		"By plate normalized (lowercase with dashes)": {placa: "yuc-124", wantEconomico: "VYV-0043"},
		"By empresa picks first unit":                 {empresa: "Autobuses Peninsulares", wantEconomico: "VYV-0042"},
		"Unknown plate":                               {placa: "ZZZ999", wantError: true},
		"Nothing":                                     {wantError: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, err := ResolveVehicle(testVehicles, tc.economico, tc.placa, tc.empresa)
			if tc.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantEconomico, group.EconomicNumber)
			assert.NotEmpty(t, group.Plate, "the full field group must come back synchronized")
			assert.NotEmpty(t, group.Empresa)
		})
	}
}
