// backend/sheets/csv_parser_test.go
package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vayven/inspecciones/backend/models"
)

func TestParseVehicles(t *testing.T) {
	t.Parallel()

	csvData := `numero_economico,placa,empresa
VYV-0001,YUC100,Transportes del Sureste
VYV-0042,YUC123,Autobuses Peninsulares
`
	vehicles, err := ParseVehicles(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "VYV-0001", vehicles[0].EconomicNumber)
	assert.Equal(t, "YUC123", vehicles[1].Plate)
	assert.Equal(t, "Autobuses Peninsulares", vehicles[1].Empresa)
}

func TestParseRoutes(t *testing.T) {
	t.Parallel()

	csvData := `numero_ruta,ruta
1,Centro - Norte
12,Centro - Periférico
`
	routes, err := ParseRoutes(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, 1, routes[0].Number)
	assert.Equal(t, "Centro - Periférico", routes[1].Name)
}

func TestParsePartRows(t *testing.T) {
	t.Parallel()

	csvData := `parte,ubicacion_parte
puerta,izquierda
puerta,derecha
asiento,
`
	rows, err := ParsePartRows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "puerta", rows[0].Part)
	assert.Equal(t, "derecha", rows[1].Location)
	assert.Equal(t, "", rows[2].Location, "blank cells decode as empty locations")
}

func TestBuildPartCatalog(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rows []models.PartRow

		want []models.CatalogPart
	}{
		"Groups preserving worksheet order": {
			rows: []models.PartRow{
				{Part: "puerta", Location: "izquierda"},
				{Part: "puerta", Location: "derecha"},
				{Part: "asiento", Location: ""},
				{Part: "espejo", Location: "interior"},
			},
			want: []models.CatalogPart{
				{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
				{Part: "asiento"},
				{Part: "espejo", Locations: []string{"interior"}},
			},
		},
		"Deduplicates repeated locations": {
			rows: []models.PartRow{
				{Part: "puerta", Location: "izquierda"},
				{Part: "puerta", Location: "izquierda"},
				{Part: "puerta", Location: "derecha"},
			},
			want: []models.CatalogPart{
				{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
			},
		},
		"Interleaved parts keep first-appearance order": {
			rows: []models.PartRow{
				{Part: "puerta", Location: "izquierda"},
				{Part: "espejo", Location: "interior"},
				{Part: "puerta", Location: "derecha"},
			},
			want: []models.CatalogPart{
				{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
				{Part: "espejo", Locations: []string{"interior"}},
			},
		},
		"Blank part names are skipped": {
			rows: []models.PartRow{
				{Part: "", Location: "izquierda"},
				{Part: "puerta", Location: "derecha"},
			},
			want: []models.CatalogPart{
				{Part: "puerta", Locations: []string{"derecha"}},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, BuildPartCatalog(tc.rows))
		})
	}
}

func TestParseInspectionRecordsWithoutFollowUpColumns(t *testing.T) {
	t.Parallel()

	// Old worksheet snapshot without the follow-up columns.
	csvData := `folio_inspeccion,modalidad_inspeccion,fecha_inspeccion,hora_inspeccion,inspector,numero_ruta,ruta,numero_economico,placa,empresa,parte,ubicacion_parte,estado_parte,descripcion_evento,fuente_evento
F-001,ALEATORIA,2025-03-14,10:30,Ana Pech,12,Centro - Periférico,VYV-0042,YUC123,Autobuses Peninsulares,puerta,derecha,MAL ESTADO,rota,INSPECCIÓN
`
	records, err := ParseInspectionRecords(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "F-001", records[0].Folio)
	assert.Equal(t, models.StateBad, records[0].State)
	assert.Equal(t, "", records[0].OficioDate, "missing follow-up columns decode empty")
}

func TestMarshalInspectionRecordsRoundTrip(t *testing.T) {
	t.Parallel()

	records := []models.InspectionRecord{
		{
			Folio:          "F-002",
			Modality:       models.ModalityTargeted,
			Date:           "2025-04-01",
			Time:           "09:00",
			Inspector:      "Luis Canul",
			RouteNumber:    1,
			RouteName:      "Centro - Norte",
			EconomicNumber: "VYV-0001",
			Plate:          "YUC100",
			Empresa:        "Transportes del Sureste",
			Part:           "asiento",
			Location:       "",
			State:          models.StateGood,
			Observation:    "",
			SourceTag:      models.SourceTagInspection,
		},
	}

	out, err := MarshalInspectionRecords(records)
	require.NoError(t, err)

	header := strings.SplitN(string(out), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "folio_inspeccion,modalidad_inspeccion,fecha_inspeccion,hora_inspeccion,inspector,numero_ruta,ruta,numero_economico,placa,empresa,parte,ubicacion_parte,estado_parte,descripcion_evento,fuente_evento"),
		"export header must keep the worksheet column order, got: %s", header)

	parsed, err := ParseInspectionRecords(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, records[0].Folio, parsed[0].Folio)
	assert.Equal(t, records[0].State, parsed[0].State)
}
