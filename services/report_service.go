// backend/services/report_service.go
package services

import (
	"fmt"
	"log"

	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/models"
	"github.com/vayven/inspecciones/backend/sheets"
)

// GetDamageHistory returns the MAL ESTADO records for one operating company,
// newest inspection first. This backs the per-concessionaire damage view.
func GetDamageHistory(empresa string) ([]models.InspectionRecord, error) {
	if empresa == "" {
		return nil, fmt.Errorf("empresa is required")
	}
	records, err := database.GetDamageHistoryForEmpresa(empresa)
	if err != nil {
		return nil, fmt.Errorf("failed to get damage history for empresa %s: %w", empresa, err)
	}
	log.Printf("Service: Damage history for empresa '%s' has %d records.\n", empresa, len(records))
	return records, nil
}

// GetInspectedEmpresas lists the companies that appear in the collection, for
// the damage-history selector.
func GetInspectedEmpresas() ([]string, error) {
	empresas, err := database.GetInspectedEmpresas()
	if err != nil {
		return nil, fmt.Errorf("failed to list inspected empresas: %w", err)
	}
	return empresas, nil
}

// ExportInspectionsCSV renders the whole inspection collection as CSV with the
// worksheet's column headers.
func ExportInspectionsCSV() ([]byte, error) {
	records, err := database.GetAllInspectionRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read inspection records for export: %w", err)
	}
	out, err := sheets.MarshalInspectionRecords(records)
	if err != nil {
		return nil, err
	}
	log.Printf("Service: Exported %d inspection records as CSV.\n", len(records))
	return out, nil
}
