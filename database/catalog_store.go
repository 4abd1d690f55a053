// backend/database/catalog_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/vayven/inspecciones/backend/models"
)

// SaveVehicles saves the vehiculos worksheet rows to the database.
// Uses a "clear and load" strategy for a given sourceWorksheet.
func SaveVehicles(vehicles []models.Vehicle, sourceWorksheet string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(vehicles) == 0 {
		log.Println("No vehicles provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for vehicles: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM vehiculos WHERE source_worksheet = ?", sourceWorksheet)
	if err != nil {
		return fmt.Errorf("failed to delete old vehicles for source %s: %w", sourceWorksheet, err)
	}
	log.Printf("Cleared existing vehicles for source worksheet: %s\n", sourceWorksheet)

	stmt, err := tx.Prepare(`
		INSERT INTO vehiculos (numero_economico, placa, empresa, source_worksheet, updated_at)
		VALUES (?, ?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vehicle insert statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range vehicles {
		_, err := stmt.Exec(v.EconomicNumber, v.Plate, v.Empresa, sourceWorksheet)
		if err != nil {
			log.Printf("ERROR saving vehicle: %+v, Error: %v", v, err)
			return fmt.Errorf("failed to execute vehicle insert for numero_economico '%s': %w", v.EconomicNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for vehicles: %w", err)
	}

	log.Printf("Successfully saved %d vehicles from source worksheet: %s\n", len(vehicles), sourceWorksheet)
	return nil
}

// SaveRoutes saves the rutas worksheet rows using the same clear-and-load strategy.
func SaveRoutes(routes []models.Route, sourceWorksheet string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(routes) == 0 {
		log.Println("No routes provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for routes: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM rutas WHERE source_worksheet = ?", sourceWorksheet)
	if err != nil {
		return fmt.Errorf("failed to delete old routes for source %s: %w", sourceWorksheet, err)
	}
	log.Printf("Cleared existing routes for source worksheet: %s\n", sourceWorksheet)

	stmt, err := tx.Prepare(`
		INSERT INTO rutas (numero_ruta, ruta, source_worksheet, updated_at)
		VALUES (?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare route insert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range routes {
		_, err := stmt.Exec(r.Number, r.Name, sourceWorksheet)
		if err != nil {
			log.Printf("ERROR saving route: %+v, Error: %v", r, err)
			return fmt.Errorf("failed to execute route insert for numero_ruta %d: %w", r.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for routes: %w", err)
	}

	log.Printf("Successfully saved %d routes from source worksheet: %s\n", len(routes), sourceWorksheet)
	return nil
}

// SavePartRows saves the partes worksheet rows. Insertion order is preserved by
// the auto-increment id and is what GetPartRows later returns, so the catalog
// keeps worksheet order.
func SavePartRows(rows []models.PartRow, sourceWorksheet string) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if len(rows) == 0 {
		log.Println("No part rows provided to save.")
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for part rows: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec("DELETE FROM partes WHERE source_worksheet = ?", sourceWorksheet)
	if err != nil {
		return fmt.Errorf("failed to delete old part rows for source %s: %w", sourceWorksheet, err)
	}
	log.Printf("Cleared existing part rows for source worksheet: %s\n", sourceWorksheet)

	stmt, err := tx.Prepare(`
		INSERT INTO partes (parte, ubicacion_parte, source_worksheet, updated_at)
		VALUES (?, ?, ?, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare part row insert statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		var location sql.NullString
		if p.Location != "" {
			location = sql.NullString{String: p.Location, Valid: true}
		}
		_, err := stmt.Exec(p.Part, location, sourceWorksheet)
		if err != nil {
			log.Printf("ERROR saving part row: %+v, Error: %v", p, err)
			return fmt.Errorf("failed to execute part row insert for parte '%s': %w", p.Part, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for part rows: %w", err)
	}

	log.Printf("Successfully saved %d part rows from source worksheet: %s\n", len(rows), sourceWorksheet)
	return nil
}

// GetVehicles returns all vehicles in worksheet order.
func GetVehicles() ([]models.Vehicle, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, numero_economico, placa, empresa, source_worksheet, created_at, updated_at
		FROM vehiculos
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(&v.ID, &v.EconomicNumber, &v.Plate, &v.Empresa, &v.SourceWorksheet, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			log.Printf("ERROR: Failed to scan vehicle row: %v", err)
			continue
		}
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// GetRoutes returns all routes in worksheet order.
func GetRoutes() ([]models.Route, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, numero_ruta, ruta, source_worksheet, created_at, updated_at
		FROM rutas
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		err := rows.Scan(&r.ID, &r.Number, &r.Name, &r.SourceWorksheet, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			log.Printf("ERROR: Failed to scan route row: %v", err)
			continue
		}
		routes = append(routes, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", err)
	}
	return routes, nil
}

// GetPartRows returns the raw (parte, ubicacion) rows in worksheet order.
func GetPartRows() ([]models.PartRow, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}
	rows, err := DB.Query(`
		SELECT id, parte, ubicacion_parte, source_worksheet, created_at, updated_at
		FROM partes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query part rows: %w", err)
	}
	defer rows.Close()

	var parts []models.PartRow
	for rows.Next() {
		var p models.PartRow
		var location sql.NullString
		err := rows.Scan(&p.ID, &p.Part, &location, &p.SourceWorksheet, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			log.Printf("ERROR: Failed to scan part row: %v", err)
			continue
		}
		if location.Valid {
			p.Location = location.String
		}
		parts = append(parts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part rows: %w", err)
	}
	return parts, nil
}

// CountVehicles and CountRoutes feed the integrity report.
func CountVehicles() (int, error) {
	return countTable("vehiculos")
}

func CountRoutes() (int, error) {
	return countTable("rutas")
}

func countTable(table string) (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database connection is not initialized")
	}
	var count int
	// table comes from a fixed internal set, never from request input.
	err := DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return count, nil
}
