// backend/sheets/csv_parser.go
package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/vayven/inspecciones/backend/models"
)

// ParseVehicles takes an io.Reader containing CSV data of the vehiculos
// worksheet and returns a slice of Vehicle structs.
// csvutil assumes the first line is a header and uses it to map to struct
// fields based on the `csv:"..."` tags.
func ParseVehicles(reader io.Reader) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for vehicles: %w", err)
	}
	if err := decoder.Decode(&vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles CSV data: %w", err)
	}

	log.Printf("Sheets: Successfully parsed %d vehicles from CSV.\n", len(vehicles))
	return vehicles, nil
}

// ParseRoutes takes an io.Reader containing CSV data of the rutas worksheet
// and returns a slice of Route structs.
func ParseRoutes(reader io.Reader) ([]models.Route, error) {
	var routes []models.Route

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for routes: %w", err)
	}
	if err := decoder.Decode(&routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes CSV data: %w", err)
	}

	log.Printf("Sheets: Successfully parsed %d routes from CSV.\n", len(routes))
	return routes, nil
}

// ParsePartRows takes an io.Reader containing CSV data of the partes worksheet
// and returns the raw (parte, ubicacion) rows in worksheet order.
func ParsePartRows(reader io.Reader) ([]models.PartRow, error) {
	var rows []models.PartRow

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for part rows: %w", err)
	}
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode part rows CSV data: %w", err)
	}

	log.Printf("Sheets: Successfully parsed %d part rows from CSV.\n", len(rows))
	return rows, nil
}

// ParseInspectionRecords takes an io.Reader containing CSV data of the
// inspecciones worksheet and returns the historical records it holds.
func ParseInspectionRecords(reader io.Reader) ([]models.InspectionRecord, error) {
	var records []models.InspectionRecord

	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for inspection records: %w", err)
	}
	// Older snapshots of the worksheet predate the follow-up columns; leave
	// DisallowMissingColumns off so those decode with empty values.
	decoder.DisallowMissingColumns = false
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode inspection records CSV data: %w", err)
	}

	log.Printf("Sheets: Successfully parsed %d inspection records from CSV.\n", len(records))
	return records, nil
}

// BuildPartCatalog groups raw part rows into the ordered catalog the expander
// iterates. Part order and per-part location order follow first appearance in
// the worksheet; duplicate locations are dropped; blank location cells
// contribute the part name but no location.
func BuildPartCatalog(rows []models.PartRow) []models.CatalogPart {
	var catalog []models.CatalogPart
	index := make(map[string]int)
	seen := make(map[models.PartLocation]bool)

	for _, row := range rows {
		part := strings.TrimSpace(row.Part)
		if part == "" {
			continue
		}
		i, ok := index[part]
		if !ok {
			i = len(catalog)
			index[part] = i
			catalog = append(catalog, models.CatalogPart{Part: part})
		}
		location := strings.TrimSpace(row.Location)
		if location == "" {
			continue
		}
		key := models.PartLocation{Part: part, Location: location}
		if seen[key] {
			continue
		}
		seen[key] = true
		catalog[i].Locations = append(catalog[i].Locations, location)
	}
	return catalog
}

// MarshalInspectionRecords encodes the full record collection back to CSV with
// the same header the worksheet uses, for the export endpoint.
func MarshalInspectionRecords(records []models.InspectionRecord) ([]byte, error) {
	out, err := csvutil.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inspection records to CSV: %w", err)
	}
	return out, nil
}
