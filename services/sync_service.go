// backend/services/sync_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/sheets"
)

// lastKnownGids caches the name->gid map from the last discovery so a single
// worksheet can be re-synced without re-scraping the published page.
var lastKnownGids = make(map[string]string)

// InitWorksheetGids seeds lastKnownGids from the worksheet_versions table so a
// restarted service can sync without an immediate discovery round-trip.
func InitWorksheetGids() {
	log.Println("Service: Initializing known worksheet gids from DB...")
	versions, err := database.GetWorksheetVersions()
	if err != nil {
		log.Printf("ERROR Service: Failed to load worksheet versions from DB: %v\n", err)
		return
	}
	for _, v := range versions {
		lastKnownGids[v.WorksheetName] = v.Gid
		log.Printf("INFO Service: Known gid for worksheet '%s': %s (last synced %v)\n",
			v.WorksheetName, v.Gid, v.LastSyncedAt)
	}
	if len(versions) == 0 {
		log.Println("INFO Service: No worksheet versions recorded yet; first sync will discover gids.")
	}
}

// SyncAllWorksheets discovers the published worksheet tabs and mirrors all four
// into the database: clear-and-load for the reference worksheets, append-only
// import for the inspections worksheet.
func SyncAllWorksheets() error {
	gids, err := sheets.DiscoverWorksheets()
	if err != nil {
		return fmt.Errorf("failed to discover worksheets: %w", err)
	}
	for name, gid := range gids {
		lastKnownGids[name] = gid
	}

	ws := config.AppConfig.Worksheets
	for _, name := range []string{ws.Vehicles, ws.Routes, ws.Parts, ws.Inspections} {
		if err := SyncWorksheet(name); err != nil {
			return err
		}
	}
	InvalidateDisplayCache()
	return nil
}

// SyncWorksheet mirrors one worksheet by name. The gid comes from the last
// discovery (or the worksheet_versions table after a restart); call
// SyncAllWorksheets first when neither knows the worksheet yet.
func SyncWorksheet(worksheetName string) error {
	gid, ok := lastKnownGids[worksheetName]
	if !ok {
		gids, err := sheets.DiscoverWorksheets()
		if err != nil {
			return fmt.Errorf("failed to discover worksheets while looking for '%s': %w", worksheetName, err)
		}
		for name, g := range gids {
			lastKnownGids[name] = g
		}
		gid, ok = lastKnownGids[worksheetName]
		if !ok {
			return fmt.Errorf("worksheet '%s' not found on the published spreadsheet", worksheetName)
		}
	}

	log.Printf("Service: Syncing worksheet '%s' (gid %s)...\n", worksheetName, gid)
	localPath, err := sheets.DownloadWorksheetCSV(worksheetName, gid)
	if err != nil {
		return fmt.Errorf("failed to download worksheet '%s': %w", worksheetName, err)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open downloaded CSV %s: %w", localPath, err)
	}
	defer file.Close()

	var rowsLoaded int
	ws := config.AppConfig.Worksheets
	switch worksheetName {
	case ws.Vehicles:
		vehicles, err := sheets.ParseVehicles(file)
		if err != nil {
			return err
		}
		if err := database.SaveVehicles(vehicles, worksheetName); err != nil {
			return err
		}
		rowsLoaded = len(vehicles)
	case ws.Routes:
		routes, err := sheets.ParseRoutes(file)
		if err != nil {
			return err
		}
		if err := database.SaveRoutes(routes, worksheetName); err != nil {
			return err
		}
		rowsLoaded = len(routes)
	case ws.Parts:
		partRows, err := sheets.ParsePartRows(file)
		if err != nil {
			return err
		}
		if err := database.SavePartRows(partRows, worksheetName); err != nil {
			return err
		}
		rowsLoaded = len(partRows)
	case ws.Inspections:
		rowsLoaded, err = importInspectionWorksheet(file)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown worksheet '%s'. Use one of: %s, %s, %s, %s",
			worksheetName, ws.Vehicles, ws.Routes, ws.Parts, ws.Inspections)
	}

	exportURL, _ := sheets.WorksheetExportURL(gid)
	syncID := uuid.New().String()
	if err := database.LogWorksheetSync(worksheetName, gid, exportURL, localPath, rowsLoaded, syncID, time.Now().UTC()); err != nil {
		// The data itself landed; a failed version log is not worth failing the sync.
		log.Printf("WARN Service: Worksheet '%s' synced but version logging failed: %v\n", worksheetName, err)
	}

	InvalidateDisplayCache()
	log.Printf("Service: Worksheet '%s' synced (%d rows, sync %s).\n", worksheetName, rowsLoaded, syncID)
	return nil
}

// importInspectionWorksheet imports the historical inspecciones worksheet
// append-only: the collection never shrinks, so rows are added only when the
// sheet holds more than the database already does. Returns how many rows were
// appended.
func importInspectionWorksheet(file *os.File) (int, error) {
	records, err := sheets.ParseInspectionRecords(file)
	if err != nil {
		return 0, err
	}

	existing, err := database.CountInspectionRecords()
	if err != nil {
		return 0, fmt.Errorf("failed to count existing inspection records: %w", err)
	}
	if len(records) <= existing {
		log.Printf("Service: Inspection worksheet has %d rows, database has %d; nothing to import.\n",
			len(records), existing)
		return 0, nil
	}

	newRecords := records[existing:]
	if err := database.AppendInspectionRecords(newRecords); err != nil {
		return 0, fmt.Errorf("failed to import inspection worksheet rows: %w", err)
	}
	log.Printf("Service: Imported %d new inspection rows from the worksheet (%d already mirrored).\n",
		len(newRecords), existing)
	return len(newRecords), nil
}
