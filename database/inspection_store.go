// backend/database/inspection_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/vayven/inspecciones/backend/models"
)

// AppendInspectionRecords appends the expanded record set of one inspection to
// the inspecciones collection. The collection is append-only: within a single
// transaction the row count is read before and after the inserts, and the whole
// write is rolled back if the count did not grow by exactly the number of rows
// inserted. This is the same never-shrink guard the spreadsheet writer enforced.
func AppendInspectionRecords(records []models.InspectionRecord) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(records) == 0 {
		log.Println("No inspection records provided to append.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for inspection records: %w", err)
	}
	defer tx.Rollback()

	var countBefore int
	if err := tx.QueryRow("SELECT COUNT(*) FROM inspecciones").Scan(&countBefore); err != nil {
		return fmt.Errorf("failed to count inspection rows before append: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO inspecciones (
			folio_inspeccion, modalidad_inspeccion, fecha_inspeccion, hora_inspeccion,
			inspector, numero_ruta, ruta, numero_economico, placa, empresa,
			parte, ubicacion_parte, estado_parte, descripcion_evento, fuente_evento,
			fecha_oficio, respuesta_empresa, fecha_verificacion
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare inspection insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.Folio, rec.Modality, rec.Date, rec.Time,
			rec.Inspector, rec.RouteNumber, rec.RouteName, rec.EconomicNumber, rec.Plate, rec.Empresa,
			rec.Part, nullableString(rec.Location), rec.State, rec.Observation, rec.SourceTag,
			nullableString(rec.OficioDate), nullableString(rec.EmpresaResponse), nullableString(rec.VerificationDate),
		)
		if err != nil {
			log.Printf("ERROR appending inspection record: %+v, Error: %v", rec, err)
			return fmt.Errorf("failed to execute inspection insert for folio '%s', parte '%s': %w", rec.Folio, rec.Part, err)
		}
	}

	var countAfter int
	if err := tx.QueryRow("SELECT COUNT(*) FROM inspecciones").Scan(&countAfter); err != nil {
		return fmt.Errorf("failed to count inspection rows after append: %w", err)
	}
	if countAfter < countBefore+len(records) {
		return fmt.Errorf("append would lose data: row count went from %d to %d with %d inserts; rolled back", countBefore, countAfter, len(records))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for inspection records: %w", err)
	}

	log.Printf("Database: Appended %d inspection records (collection grew %d -> %d).\n", len(records), countBefore, countAfter)
	return nil
}

// GetDamageHistoryForEmpresa returns all MAL ESTADO records for the given
// operating company, newest inspection date first.
func GetDamageHistoryForEmpresa(empresa string) ([]models.InspectionRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, folio_inspeccion, modalidad_inspeccion, fecha_inspeccion, hora_inspeccion,
		       inspector, numero_ruta, ruta, numero_economico, placa, empresa,
		       parte, ubicacion_parte, estado_parte, descripcion_evento, fuente_evento,
		       fecha_oficio, respuesta_empresa, fecha_verificacion, created_at
		FROM inspecciones
		WHERE empresa = ? AND estado_parte = ?
		ORDER BY fecha_inspeccion DESC, id DESC
	`, empresa, models.StateBad)
	if err != nil {
		return nil, fmt.Errorf("failed to query damage history for empresa %s: %w", empresa, err)
	}
	defer rows.Close()

	records, err := scanInspectionRows(rows)
	if err != nil {
		return nil, err
	}
	log.Printf("Retrieved %d damage-history records for empresa %s.\n", len(records), empresa)
	return records, nil
}

// GetAllInspectionRecords returns the full collection in insertion order, for
// the CSV export.
func GetAllInspectionRecords() ([]models.InspectionRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, folio_inspeccion, modalidad_inspeccion, fecha_inspeccion, hora_inspeccion,
		       inspector, numero_ruta, ruta, numero_economico, placa, empresa,
		       parte, ubicacion_parte, estado_parte, descripcion_evento, fuente_evento,
		       fecha_oficio, respuesta_empresa, fecha_verificacion, created_at
		FROM inspecciones
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection records: %w", err)
	}
	defer rows.Close()

	return scanInspectionRows(rows)
}

// GetInspectedEmpresas returns the distinct companies appearing in the
// collection, for populating the damage-history selector.
func GetInspectedEmpresas() ([]string, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`SELECT DISTINCT empresa FROM inspecciones ORDER BY empresa`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspected empresas: %w", err)
	}
	defer rows.Close()

	var empresas []string
	for rows.Next() {
		var e sql.NullString
		if err := rows.Scan(&e); err != nil {
			log.Printf("ERROR: Failed to scan empresa row: %v", err)
			continue
		}
		if e.Valid && e.String != "" {
			empresas = append(empresas, e.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating empresa rows: %w", err)
	}
	return empresas, nil
}

// CountInspectionRecords returns the current size of the collection.
func CountInspectionRecords() (int, error) {
	return countTable("inspecciones")
}

// GetColumnSamples returns up to limit non-null values for each text-bearing
// column of the inspecciones table, keyed by column name. The integrity check
// scans these for mixed numeric/text content, the way the sheet's heterogeneous
// cells used to surface.
func GetColumnSamples(limit int) (map[string][]string, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	columns := []string{
		"folio_inspeccion", "fecha_inspeccion", "hora_inspeccion",
		"numero_economico", "placa", "empresa", "parte", "ubicacion_parte",
	}
	samples := make(map[string][]string, len(columns))
	for _, col := range columns {
		// col comes from the fixed list above, never from request input.
		query := fmt.Sprintf("SELECT %s FROM inspecciones WHERE %s IS NOT NULL LIMIT ?", col, col)
		rows, err := DB.Query(query, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to sample column %s: %w", col, err)
		}
		var values []string
		for rows.Next() {
			var v sql.NullString
			if err := rows.Scan(&v); err != nil {
				log.Printf("ERROR: Failed to scan sample of column %s: %v", col, err)
				continue
			}
			if v.Valid {
				values = append(values, v.String)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error iterating samples of column %s: %w", col, err)
		}
		rows.Close()
		samples[col] = values
	}
	return samples, nil
}

func scanInspectionRows(rows *sql.Rows) ([]models.InspectionRecord, error) {
	var records []models.InspectionRecord
	for rows.Next() {
		var rec models.InspectionRecord
		var hora, inspector, ruta, placa, empresa sql.NullString
		var ubicacion, descripcion, oficio, respuesta, verificacion sql.NullString
		var numeroRuta sql.NullInt64
		err := rows.Scan(
			&rec.ID, &rec.Folio, &rec.Modality, &rec.Date, &hora,
			&inspector, &numeroRuta, &ruta, &rec.EconomicNumber, &placa, &empresa,
			&rec.Part, &ubicacion, &rec.State, &descripcion, &rec.SourceTag,
			&oficio, &respuesta, &verificacion, &rec.CreatedAt,
		)
		if err != nil {
			log.Printf("ERROR: Failed to scan inspection record row: %v", err)
			continue
		}
		rec.Time = hora.String
		rec.Inspector = inspector.String
		rec.RouteNumber = int(numeroRuta.Int64)
		rec.RouteName = ruta.String
		rec.Plate = placa.String
		rec.Empresa = empresa.String
		rec.Location = ubicacion.String
		rec.Observation = descripcion.String
		rec.OficioDate = oficio.String
		rec.EmpresaResponse = respuesta.String
		rec.VerificationDate = verificacion.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspection record rows: %w", err)
	}
	return records, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
