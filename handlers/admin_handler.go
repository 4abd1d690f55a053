// backend/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/vayven/inspecciones/backend/config"
	"github.com/vayven/inspecciones/backend/database"
	"github.com/vayven/inspecciones/backend/services"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// SyncWorksheetsHandler handles requests to mirror the published spreadsheet
// into the database. Expects POST to /api/admin/sync-sheets/{worksheet}
// where {worksheet} is a worksheet name (e.g. "vehiculos") or "all".
func SyncWorksheetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected path: api/admin/sync-sheets/{worksheet}
	if len(pathParts) < 4 {
		respondWithError(w, http.StatusBadRequest, "Invalid path. Expected /api/admin/sync-sheets/{worksheet}")
		return
	}
	worksheet := strings.ToLower(pathParts[3])

	var err error
	if worksheet == "all" {
		err = services.SyncAllWorksheets()
	} else {
		err = services.SyncWorksheet(worksheet)
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to sync worksheet(s) '%s': %v", worksheet, err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Worksheet sync for '%s' completed successfully.", worksheet)})
}

// RefreshCacheHandler drops the display cache so the next reference read hits
// the database. Mirrors the old UI's refresh button.
// Expects POST to /api/admin/refresh-cache
func RefreshCacheHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	services.InvalidateDisplayCache()
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Display cache invalidated."})
}

// IntegrityCheckHandler runs the data integrity check and returns the report.
// Expects GET to /api/admin/integrity-check
func IntegrityCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	report, err := services.RunIntegrityCheck()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to run integrity check: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// DataStatusHandler reports the sync state of each mirrored worksheet plus the
// configured worksheet names, for the admin status view.
// Expects GET to /api/admin/data-status
func DataStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	versions, err := database.GetWorksheetVersions()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to read worksheet versions: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"worksheets": config.AppConfig.Worksheets,
		"versions":   versions,
	})
}
