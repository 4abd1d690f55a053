// backend/database/sheetsource_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/vayven/inspecciones/backend/models"
)

// LogWorksheetSync inserts or updates a record in the worksheet_versions table,
// marking when a worksheet was last mirrored, from which gid, and how many rows
// were loaded.
func LogWorksheetSync(
	worksheetName string,
	gid string,
	sourceURL string,
	downloadedFilename string,
	rowsLoaded int,
	syncID string,
	syncedAt time.Time,
) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	query := `
		INSERT INTO worksheet_versions (
			worksheet_name, gid, source_url, last_downloaded_file,
			rows_loaded, last_sync_id, last_synced_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			gid = VALUES(gid),
			source_url = VALUES(source_url),
			last_downloaded_file = VALUES(last_downloaded_file),
			rows_loaded = VALUES(rows_loaded),
			last_sync_id = VALUES(last_sync_id),
			last_synced_at = VALUES(last_synced_at),
			updated_at = NOW()
	`

	_, err := DB.Exec(query,
		worksheetName, gid, sourceURL, downloadedFilename,
		rowsLoaded, syncID, syncedAt,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to log worksheet sync for '%s': %v", worksheetName, err)
		return fmt.Errorf("failed to log worksheet sync for %s: %w", worksheetName, err)
	}

	log.Printf("Database: Logged worksheet sync for '%s' (gid %s, %d rows, sync %s).\n",
		worksheetName, gid, rowsLoaded, syncID)
	return nil
}

// GetWorksheetVersions retrieves all records from the worksheet_versions table.
func GetWorksheetVersions() ([]models.WorksheetVersion, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT id, worksheet_name, gid, source_url, last_downloaded_file,
		       rows_loaded, last_sync_id, last_synced_at, created_at, updated_at
		FROM worksheet_versions
		ORDER BY worksheet_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query worksheet_versions: %w", err)
	}
	defer rows.Close()

	var versions []models.WorksheetVersion
	for rows.Next() {
		var v models.WorksheetVersion
		var lastFile, lastSyncID sql.NullString
		var lastSyncedAt sql.NullTime

		err := rows.Scan(
			&v.ID, &v.WorksheetName, &v.Gid, &v.SourceURL, &lastFile,
			&v.RowsLoaded, &lastSyncID, &lastSyncedAt, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			log.Printf("ERROR Database: Failed to scan worksheet_version row: %v", err)
			continue
		}
		if lastFile.Valid {
			v.LastDownloadedFile = lastFile.String
		}
		if lastSyncID.Valid {
			v.LastSyncID = lastSyncID.String
		}
		if lastSyncedAt.Valid {
			v.LastSyncedAt = &lastSyncedAt.Time
		}
		versions = append(versions, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating worksheet_version rows: %w", err)
	}
	return versions, nil
}
