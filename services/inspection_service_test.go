// backend/services/inspection_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vayven/inspecciones/backend/models"
)

func testHeader() models.InspectionHeader {
	return models.InspectionHeader{
		Folio:          "F-001",
		Modality:       models.ModalityRandom,
		Date:           "2025-03-14",
		Time:           "10:30",
		Inspector:      "Ana Pech",
		RouteNumber:    12,
		RouteName:      "Centro - Periférico",
		EconomicNumber: "VYV-0042",
		Plate:          "YUC123",
		Empresa:        "Transportes del Sureste",
	}
}

func TestExpandInspection(t *testing.T) {
	t.Parallel()

	catalog := []models.CatalogPart{
		{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
		{Part: "asiento", Locations: nil},
		{Part: "espejo", Locations: []string{"lateral derecho", "lateral izquierdo", "interior"}},
	}

	tests := map[string]struct {
		damagedParts []string
		selections   map[string][]string
		observations map[models.PartLocation]string

		wantCount     int
		wantParts     []string
		wantLocations []string
		wantStates    []string
		wantObs       []string
	}{
		"No damaged parts": {
			wantCount:     3,
			wantParts:     []string{"puerta", "asiento", "espejo"},
			wantLocations: []string{"derecha", "", "interior"},
			wantStates:    []string{models.StateGood, models.StateGood, models.StateGood},
			wantObs:       []string{"", "", ""},
		},
		"One damaged part with one location": {
			damagedParts: []string{"puerta"},
			selections:   map[string][]string{"puerta": {"derecha"}},
			observations: map[models.PartLocation]string{
				{Part: "puerta", Location: "derecha"}: "rota",
			},
			wantCount:     3,
			wantParts:     []string{"puerta", "asiento", "espejo"},
			wantLocations: []string{"derecha", "", "interior"},
			wantStates:    []string{models.StateBad, models.StateGood, models.StateGood},
			wantObs:       []string{"rota", "", ""},
		},
		"Damaged part with several locations keeps selection order": {
			damagedParts: []string{"espejo"},
			selections:   map[string][]string{"espejo": {"lateral izquierdo", "interior"}},
			observations: map[models.PartLocation]string{
				{Part: "espejo", Location: "lateral izquierdo"}: "estrellado",
				{Part: "espejo", Location: "interior"}:          "",
			},
			wantCount:     4,
			wantParts:     []string{"puerta", "asiento", "espejo", "espejo"},
			wantLocations: []string{"derecha", "", "lateral izquierdo", "interior"},
			wantStates:    []string{models.StateGood, models.StateGood, models.StateBad, models.StateBad},
			wantObs:       []string{"", "", "estrellado", ""},
		},
		"Damaged part with empty selection emits no rows for it": {
			damagedParts:  []string{"puerta"},
			selections:    map[string][]string{"puerta": {}},
			wantCount:     2,
			wantParts:     []string{"asiento", "espejo"},
			wantLocations: []string{"", "interior"},
			wantStates:    []string{models.StateGood, models.StateGood},
			wantObs:       []string{"", ""},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			records, err := ExpandInspection(testHeader(), catalog, tc.damagedParts, tc.selections, tc.observations)
			require.NoError(t, err, "ExpandInspection should not return an error")
			require.Len(t, records, tc.wantCount, "record count should match undamaged parts plus selected pairs")

			for i, rec := range records {
				assert.Equal(t, tc.wantParts[i], rec.Part, "part order should follow catalog order")
				assert.Equal(t, tc.wantLocations[i], rec.Location, "location of record %d", i)
				assert.Equal(t, tc.wantStates[i], rec.State, "state of record %d", i)
				assert.Equal(t, tc.wantObs[i], rec.Observation, "observation of record %d", i)
				assert.Equal(t, models.SourceTagInspection, rec.SourceTag, "every record carries the inspection source tag")
				assert.Equal(t, "F-001", rec.Folio, "header fields are copied onto every record")
				assert.Equal(t, "Transportes del Sureste", rec.Empresa)
			}
		})
	}
}

func TestExpandInspectionSpecScenario(t *testing.T) {
	t.Parallel()

	catalog := []models.CatalogPart{
		{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
		{Part: "asiento", Locations: nil},
	}
	records, err := ExpandInspection(
		testHeader(),
		catalog,
		[]string{"puerta"},
		map[string][]string{"puerta": {"derecha"}},
		map[models.PartLocation]string{{Part: "puerta", Location: "derecha"}: "rota"},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "puerta", records[0].Part)
	assert.Equal(t, "derecha", records[0].Location)
	assert.Equal(t, models.StateBad, records[0].State)
	assert.Equal(t, "rota", records[0].Observation)

	assert.Equal(t, "asiento", records[1].Part)
	assert.Equal(t, "", records[1].Location, "a part without catalogued locations gets an empty location")
	assert.Equal(t, models.StateGood, records[1].State)
	assert.Equal(t, "", records[1].Observation)
}

func TestExpandInspectionMissingObservation(t *testing.T) {
	t.Parallel()

	catalog := []models.CatalogPart{{Part: "puerta", Locations: []string{"izquierda", "derecha"}}}
	_, err := ExpandInspection(
		testHeader(),
		catalog,
		[]string{"puerta"},
		map[string][]string{"puerta": {"derecha"}},
		nil,
	)
	require.Error(t, err, "a flagged pair without an observation entry is a form-state defect")
	assert.Contains(t, err.Error(), "puerta")
	assert.Contains(t, err.Error(), "derecha")
}

func TestExpandInspectionDeterministic(t *testing.T) {
	t.Parallel()

	catalog := []models.CatalogPart{
		{Part: "puerta", Locations: []string{"izquierda", "derecha"}},
		{Part: "espejo", Locations: []string{"lateral derecho", "interior"}},
	}
	damaged := []string{"espejo"}
	selections := map[string][]string{"espejo": {"interior", "lateral derecho"}}
	observations := map[models.PartLocation]string{
		{Part: "espejo", Location: "interior"}:        "opaco",
		{Part: "espejo", Location: "lateral derecho"}: "suelto",
	}

	first, err := ExpandInspection(testHeader(), catalog, damaged, selections, observations)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ExpandInspection(testHeader(), catalog, damaged, selections, observations)
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical inputs must produce identical output")
	}
}

func TestExpandInspectionAccentedPlaceholder(t *testing.T) {
	t.Parallel()

	catalog := []models.CatalogPart{{Part: "defensa", Locations: []string{"atrás", "techo"}}}
	records, err := ExpandInspection(testHeader(), catalog, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "atrás", records[0].Location,
		"location lengths compare in characters, so 'atrás' ties 'techo' and wins by catalog order")
	assert.Equal(t, models.StateGood, records[0].State)
}

func TestDefaultLocation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		locations []string
		want      string
	}{
		"Empty set":                  {locations: nil, want: ""},
		"Single location":            {locations: []string{"trasera"}, want: "trasera"},
		"Shortest wins":              {locations: []string{"lateral izquierda", "frontal", "techo"}, want: "techo"},
		"Tie keeps catalog order":    {locations: []string{"norte", "techo", "frente"}, want: "norte"},
		"Equal length tie":           {locations: []string{"abc", "xyz"}, want: "abc"},
		"Accented tie counts runes":  {locations: []string{"atrás", "techo"}, want: "atrás"},
		"Accented shortest in runes": {locations: []string{"puerta", "atrás"}, want: "atrás"},
		"Blank entries skipped":      {locations: []string{"", "  ", "frontal"}, want: "frontal"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, defaultLocation(tc.locations))
		})
	}
}

func TestDebounceRecordsOnlyAcceptedSubmissions(t *testing.T) {
	// Not parallel: exercises the package-level debounce map.
	window := 50 * time.Millisecond

	require.False(t, isDuplicateSubmission("F-900", "VYV-0100", window))
	require.False(t, isDuplicateSubmission("F-900", "VYV-0100", window),
		"checking must not register the key; a submission that failed to persist stays retryable")

	markSubmissionAccepted("F-900", "VYV-0100")
	assert.True(t, isDuplicateSubmission("F-900", "VYV-0100", window),
		"a persisted submission is rejected within the window")
	assert.False(t, isDuplicateSubmission("F-901", "VYV-0100", window),
		"a different folio is not a duplicate")

	time.Sleep(window + 20*time.Millisecond)
	assert.False(t, isDuplicateSubmission("F-900", "VYV-0100", window),
		"the key expires with the window")
}

func TestSubmitInspectionValidation(t *testing.T) {
	// Not parallel: SubmitInspection consults AppConfig and the debounce map.
	tests := map[string]struct {
		mutate  func(*models.SubmitInspectionRequest)
		wantMsg string
	}{
		"Empty folio": {
			mutate:  func(r *models.SubmitInspectionRequest) { r.Folio = "  " },
			wantMsg: "folio",
		},
		"Empty economic number": {
			mutate:  func(r *models.SubmitInspectionRequest) { r.EconomicNumber = "" },
			wantMsg: "número económico",
		},
		"Invalid modality": {
			mutate:  func(r *models.SubmitInspectionRequest) { r.Modality = "URGENTE" },
			wantMsg: "Modalidad",
		},
		"Invalid date format": {
			mutate:  func(r *models.SubmitInspectionRequest) { r.Date = "14/03/2025" },
			wantMsg: "fecha",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			req := models.SubmitInspectionRequest{InspectionHeader: testHeader()}
			tc.mutate(&req)

			_, err := SubmitInspection(req)
			require.Error(t, err, "invalid header must block submission")

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr, "header problems are user-correctable")
			assert.Contains(t, validationErr.Message, tc.wantMsg)
		})
	}
}
