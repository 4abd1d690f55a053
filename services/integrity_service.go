// backend/services/integrity_service.go
package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/models"
)

// How many values per column the mixed-type scan looks at. Matches the
// best-effort sampling the old sheet check did.
const integritySampleLimit = 200

// RunIntegrityCheck produces the data-status report: collection sizes plus a
// best-effort scan for columns that mix numeric-looking and text values. The
// sheet accumulated exactly that kind of heterogeneity (economic numbers stored
// sometimes as numbers, sometimes as text), and it broke grouping downstream.
// Nothing is repaired here; issues are only reported.
func RunIntegrityCheck() (*models.IntegrityReport, error) {
	report := &models.IntegrityReport{}

	inspectionRows, err := database.CountInspectionRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to count inspection records: %w", err)
	}
	report.InspectionRows = inspectionRows
	if inspectionRows == 0 {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Severity: "error",
			Message:  "No hay datos de inspecciones.",
		})
	}

	vehicleRows, err := database.CountVehicles()
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}
	report.VehicleRows = vehicleRows
	if vehicleRows == 0 {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Severity: "warning",
			Message:  "La base de vehículos está vacía; sincroniza la hoja 'vehiculos'.",
		})
	}

	routeRows, err := database.CountRoutes()
	if err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}
	report.RouteRows = routeRows
	if routeRows == 0 {
		report.Issues = append(report.Issues, models.IntegrityIssue{
			Severity: "warning",
			Message:  "La base de rutas está vacía; sincroniza la hoja 'rutas'.",
		})
	}

	if inspectionRows > 0 {
		samples, err := database.GetColumnSamples(integritySampleLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to sample inspection columns: %w", err)
		}
		for col, values := range samples {
			if issue := scanColumnForMixedTypes(col, values); issue != nil {
				report.Issues = append(report.Issues, *issue)
			}
		}
	}

	report.OK = true
	for _, issue := range report.Issues {
		if issue.Severity == "error" {
			report.OK = false
			break
		}
	}

	log.Printf("Service: Integrity check finished: %d inspection rows, %d issues.\n",
		report.InspectionRows, len(report.Issues))
	return report, nil
}

// scanColumnForMixedTypes flags a column whose sampled values include both
// numeric-looking and textual entries. Returns nil when the column is
// homogeneous (or empty).
func scanColumnForMixedTypes(column string, values []string) *models.IntegrityIssue {
	numeric, textual := 0, 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if looksNumeric(v) {
			numeric++
		} else {
			textual++
		}
	}
	if numeric > 0 && textual > 0 {
		return &models.IntegrityIssue{
			Severity: "warning",
			Message: fmt.Sprintf("La columna '%s' tiene tipos mixtos: %d valores numéricos y %d de texto.",
				column, numeric, textual),
		}
	}
	return nil
}

func looksNumeric(v string) bool {
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	return false
}
