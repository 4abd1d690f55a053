// backend/models/meta.go
package models

import "time"

// WorksheetVersion tracks the freshness and metadata of each mirrored worksheet.
type WorksheetVersion struct {
	ID                 int        `db:"id" json:"id"`
	WorksheetName      string     `db:"worksheet_name" json:"worksheet_name"` // e.g., "vehiculos", "partes"
	Gid                string     `db:"gid" json:"gid"`                       // tab gid on the published spreadsheet
	SourceURL          string     `db:"source_url" json:"source_url"`
	LastDownloadedFile string     `db:"last_downloaded_file" json:"last_downloaded_file,omitempty"`
	RowsLoaded         int        `db:"rows_loaded" json:"rows_loaded"`
	LastSyncID         string     `db:"last_sync_id" json:"last_sync_id,omitempty"` // uuid of the sync run
	LastSyncedAt       *time.Time `db:"last_synced_at" json:"last_synced_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// WorksheetInfo is the discovery result for one tab of the published
// spreadsheet: its visible name and the gid needed for the CSV export URL.
type WorksheetInfo struct {
	Name string
	Gid  string
}
